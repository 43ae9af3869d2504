package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/handlers"
	"github.com/storeqa/storefront-suite/internal/services"
)

// Store is everything the storefront persists
type Store interface {
	services.ProductRepository
	services.CustomerRepository
	services.UserRepository
}

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	StoreHandler http.Handler
	UsersHandler http.Handler
	ImageHandler http.Handler
}

// BuildServerDependencies wires services and handlers over store and
// registers the demo shopper account
func BuildServerDependencies(ctx context.Context, cfg config.ServerConfig, store Store) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: cfg}

	catalog := services.NewCatalogService(store)
	accounts := services.NewAccountService(store)
	users := services.NewUserService(store)

	if _, err := accounts.Register(ctx, cfg.DemoEmail, cfg.DemoPassword, "Demo", "Shopper"); err != nil {
		return deps, fmt.Errorf("failed to register demo customer: %w", err)
	}
	log.Printf("Demo customer %s registered", cfg.DemoEmail)

	storeHandler, err := handlers.NewStoreHandler(catalog, accounts)
	if err != nil {
		return deps, fmt.Errorf("failed to create store handler: %w", err)
	}
	deps.StoreHandler = storeHandler
	deps.UsersHandler = handlers.NewUsersHandler(users, cfg.APIToken)
	deps.ImageHandler = handlers.ImageHandler{}

	return deps, nil
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/", deps.StoreHandler)
	mux.Handle("/image/", deps.ImageHandler)
	mux.Handle(handlers.UsersPath, deps.UsersHandler)
	mux.Handle(handlers.UsersPath+"/", deps.UsersHandler)

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// BaseURL returns the storefront entry URL served on listener
func BaseURL(listener net.Listener) string {
	return fmt.Sprintf("http://127.0.0.1:%d/index.php", listener.Addr().(*net.TCPAddr).Port)
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Force close once the grace period is over
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
