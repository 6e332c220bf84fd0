package cmd

import (
	"log/slog"
	"os"

	custodyhttp "custody/internal/adapters/in/http"
	"custody/internal/adapters/out/auditlog"
	"custody/internal/adapters/out/directory"
	"custody/internal/adapters/out/permissions"
	"custody/internal/adapters/out/postgres"
	"custody/internal/adapters/out/registry"
	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/services"
	"custody/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. One instance lives
// for the whole process.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	deriver    services.CustodyDeriver
	logger     *slog.Logger

	auditSink *auditlog.AsyncSink
	directory *directory.InMemoryUserDirectory
	registry  *registry.InMemoryLocationRegistry
	gate      *permissions.RolePermissionGate
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	auditSink := auditlog.NewAsyncSink(
		auditlog.NewGormAuditWriter(gormDB), config.AuditBufferSize, logger)
	auditSink.Start()

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		deriver:    services.NewCustodyDeriver(),
		logger:     logger,
		auditSink:  auditSink,
		directory:  directory.NewInMemoryUserDirectory(),
		registry:   registry.NewInMemoryLocationRegistry(),
		gate:       permissions.NewRolePermissionGate(),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) UserDirectory() *directory.InMemoryUserDirectory {
	return c.directory
}

func (c *CompositionRoot) LocationRegistry() *registry.InMemoryLocationRegistry {
	return c.registry
}

func (c *CompositionRoot) CreateCreateItemCommandHandler() commands.CreateItemCommandHandler {
	return commands.NewCreateItemCommandHandler(c.commandUoWFactory(), c.auditSink, c.directory)
}

func (c *CompositionRoot) CreateReceiveItemCommandHandler() commands.ReceiveItemCommandHandler {
	return commands.NewReceiveItemCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateForwardItemCommandHandler() commands.ForwardItemCommandHandler {
	return commands.NewForwardItemCommandHandler(c.commandUoWFactory(), c.auditSink, c.directory)
}

func (c *CompositionRoot) CreateReturnItemCommandHandler() commands.ReturnItemCommandHandler {
	return commands.NewReturnItemCommandHandler(
		c.commandUoWFactory(), c.deriver, c.auditSink, c.directory)
}

func (c *CompositionRoot) CreateArchiveItemCommandHandler() commands.ArchiveItemCommandHandler {
	return commands.NewArchiveItemCommandHandler(
		c.commandUoWFactory(), c.registry, c.auditSink, c.directory)
}

func (c *CompositionRoot) CreateListItemsQueryHandler() queries.ListItemsQueryHandler {
	return queries.NewListItemsQueryHandler(c.gormDB, c.deriver)
}

func (c *CompositionRoot) CreateGetItemHistoryQueryHandler() queries.GetItemHistoryQueryHandler {
	return queries.NewGetItemHistoryQueryHandler(c.gormDB, c.directory)
}

func (c *CompositionRoot) CreateHTTPServer() *custodyhttp.Server {
	return custodyhttp.NewServer(
		c.CreateCreateItemCommandHandler(),
		c.CreateReceiveItemCommandHandler(),
		c.CreateForwardItemCommandHandler(),
		c.CreateReturnItemCommandHandler(),
		c.CreateArchiveItemCommandHandler(),
		c.CreateListItemsQueryHandler(),
		c.CreateGetItemHistoryQueryHandler(),
		c.gate,
	)
}

func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(c.auditSink, c.gormDB, config.StaleHandOffThreshold, c.logger)
}

// Shutdown flushes parked audit records and stops the sink.
func (c *CompositionRoot) Shutdown() {
	c.auditSink.Close()
}

// commandUoWFactory bridges the postgres factory to the narrower interface the
// command handlers depend on.
func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
