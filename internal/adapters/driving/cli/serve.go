package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/httpapi"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/mcp"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/watcher"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

var (
	serveAddr  string
	serveWatch string
	serveNoMCP bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API used by the web front end. Documents uploaded through the
API stay in memory until the server stops.

The MCP server is mounted under /mcp unless --no-mcp is given. With --watch, every
supported file in the folder is uploaded at start and kept in step as files are
added, edited or removed.

Defaults for --addr and --watch come from the [server] section of the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, \":8000\")")
	serveCmd.Flags().StringVarP(&serveWatch, "watch", "w", "", "folder to upload and watch for changes")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not mount the MCP server under /mcp")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, watchDir := serveAddr, serveWatch
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			if addr == "" {
				addr = settings.Server.Addr
			}
			if watchDir == "" {
				watchDir = settings.Server.WatchDir
			}
		}
	}
	if addr == "" {
		addr = ":8000"
	}

	handler, err := buildHandler()
	if err != nil {
		return err
	}

	var w *watcher.Watcher
	if watchDir != "" {
		w, err = watcher.New(watchDir, documentService)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", watchDir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if w != nil {
		go runWatcher(ctx, stop, w)
		cmd.Printf("Watching %s for documents\n", w.Dir())
	}

	cmd.Printf("Study assistant API listening on %s\n", addr)
	return httpapi.Serve(ctx, addr, handler)
}

// buildHandler assembles the HTTP API with the optional MCP mount.
func buildHandler() (*httpapi.Handler, error) {
	ports := &httpapi.Ports{
		Document:  documentService,
		Retrieval: retrievalService,
		Study:     studyService,
	}

	var opts httpapi.Options
	if !serveNoMCP {
		server, err := mcp.NewServer(&mcp.Ports{
			Document:  documentService,
			Retrieval: retrievalService,
			Study:     studyService,
		})
		if err != nil {
			return nil, err
		}
		opts.MCP = server.Handler()
	}

	handler, err := httpapi.NewHandler(ports, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP API: %w", err)
	}
	return handler, nil
}

// runWatcher stops the server if the watcher fails.
func runWatcher(ctx context.Context, stop context.CancelFunc, w *watcher.Watcher) {
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher stopped: %v", err)
		stop()
	}
}
