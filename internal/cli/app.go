package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/cadastro/internal/config"
	"github.com/dmitrijs2005/cadastro/internal/cryptox"
	"github.com/dmitrijs2005/cadastro/internal/logging"
	"github.com/dmitrijs2005/cadastro/internal/metrics"
	"github.com/dmitrijs2005/cadastro/internal/records"
	"github.com/dmitrijs2005/cadastro/internal/storage"
)

// App wires the registration service to the terminal.
type App struct {
	service   *records.Service
	metrics   *metrics.Registry
	store     storage.Store
	log       logging.Logger
	opTimeout time.Duration
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp opens the configured storage and builds the service on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, StorageConfig(c))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", c.StorageDriver, err)
	}
	log.Debug(ctx, "storage opened", "driver", c.StorageDriver, "key", c.StorageKey)

	return newApp(c, store, log, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, store storage.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	reg := metrics.New()
	svc := records.NewService(
		records.NewRepository(store, c.StorageKey),
		records.NewValidator(records.PasswordPolicy{Min: c.PasswordMinLen, Max: c.PasswordMaxLen}),
		cryptox.NewHasher(cryptox.DefaultParams),
		consoleNotifier{w: out},
		log,
		reg,
	)

	return &App{
		service:   svc,
		metrics:   reg,
		store:     store,
		log:       log,
		opTimeout: c.OpTimeout,
		reader:    bufio.NewReader(in),
		out:       out,
	}
}

// StorageConfig maps the application config onto storage settings.
func StorageConfig(c *config.Config) storage.Config {
	return storage.Config{
		Driver:    storage.Driver(c.StorageDriver),
		DSN:       c.StorageDSN,
		Dir:       c.StorageDir,
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		Prefix:    c.S3Prefix,
		UseSSL:    c.S3UseSSL,
	}
}

// Run starts the REPL and closes the storage when it ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "failed to close storage", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Cadastro de usuário (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

// opContext bounds one storage-touching call. Prompts are not bounded.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.opTimeout)
}
