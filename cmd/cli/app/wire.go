//go:build wireinject
// +build wireinject

package app

import (
	"kustomate/internal/adapters/command_runner"
	"kustomate/internal/adapters/filesystem"
	"kustomate/internal/adapters/intent_parser"
	"kustomate/internal/adapters/keyring"
	"kustomate/internal/adapters/kubectl"
	"kustomate/internal/adapters/kustomize"
	"kustomate/internal/adapters/scanner_factory"
	"kustomate/internal/adapters/terminal"
	"kustomate/internal/api"
	"kustomate/internal/core"
	"kustomate/internal/core/handler"
	"kustomate/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	command_runner.ProvideOsCommandRunner,
	wire.Bind(new(ports.CommandRunner), new(*command_runner.OsCommandRunner)),
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	keyring.ProvideZalandoKeyring,
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
	kubectl.ProvideDiffPreviewer,
	wire.Bind(new(ports.DiffPreviewer), new(*kubectl.DiffPreviewer)),
	kustomize.ProvideExporter,
	wire.Bind(new(ports.Exporter), new(*kustomize.Exporter)),
	scanner_factory.ProvideScannerFactory,
	wire.Bind(new(ports.ScannerFactory), new(*scanner_factory.Factory)),
	intent_parser.ProvideIntentParser,
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvidePatchGenerator,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectPlanCommandHandler() (handler.PlanCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvidePlanCommandHandler,
	)
	return handler.PlanCommandHandler{}, nil
}

func InjectApplyCommandHandler() (handler.ApplyCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideApplyCommandHandler,
	)
	return handler.ApplyCommandHandler{}, nil
}

func InjectExportCommandHandler() (handler.ExportCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideExportCommandHandler,
	)
	return handler.ExportCommandHandler{}, nil
}

func InjectAuthCommandHandler() (handler.AuthCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideAuthCommandHandler,
	)
	return handler.AuthCommandHandler{}, nil
}

func InjectAPIServer() (*api.Server, error) {
	wire.Build(
		CommandHandlerSet,
		api.ProvideServer,
	)
	return nil, nil
}
