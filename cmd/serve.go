package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-user-console/api/handlers"
	"github.com/EO-DataHub/eodhp-user-console/api/middleware"
	"github.com/EO-DataHub/eodhp-user-console/api/services"
	docs "github.com/EO-DataHub/eodhp-user-console/docs"
	"github.com/EO-DataHub/eodhp-user-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-user-console/internal/userlist"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title EODHP User Console API
// @version v1
// @description JSON view of the user console state.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server rendering the user form and list",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		appCfg := commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server, _ := newServer(ctx, appCfg, fmt.Sprintf("%s:%d", host, port))

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown error")
			}
		}()

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("could not start server")
		}
		log.Info().Msg("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// newServer builds the controller and its HTTP server. The initial fetch runs
// in the background so the server can listen while the directory answers.
func newServer(ctx context.Context, appCfg *appconfig.Config, addr string) (*http.Server, *userlist.Controller) {
	// Initialise the directory client and the controller
	directory := services.NewDirectoryClient(appCfg.Directory.URL, appCfg.Directory.Timeout)
	users := userlist.New(directory, log.Logger)

	server := &http.Server{
		Addr:    addr,
		Handler: newRouter(appCfg, users),
	}

	log.Info().Str("directory", appCfg.Directory.URL).Msg("Fetching users...")
	go users.Activate(ctx)

	return server, users
}

// newRouter registers the page, form actions, JSON state API and docs routes.
func newRouter(appCfg *appconfig.Config, users handlers.UserList) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithLogger)

	// Register the routes
	base := r.PathPrefix(appCfg.BasePath).Subrouter()
	if appCfg.BasePath == "" {
		base = r
	}

	// Page and form routes
	base.HandleFunc("/", handlers.UsersPage(users, appCfg.BasePath)).Methods(http.MethodGet)
	base.HandleFunc("/users", handlers.SubmitUser(users, appCfg.BasePath)).Methods(http.MethodPost)
	base.HandleFunc("/users/{user-id}/edit", handlers.EditUser(users, appCfg.BasePath)).Methods(http.MethodPost)
	base.HandleFunc("/users/{user-id}/delete", handlers.DeleteUser(users, appCfg.BasePath)).Methods(http.MethodPost)
	base.HandleFunc("/edit/cancel", handlers.CancelEdit(users, appCfg.BasePath)).Methods(http.MethodPost)

	// State API routes
	api := base.PathPrefix("/api").Subrouter()
	api.Use(middleware.WithCORS(appCfg.CORS.AllowedOrigins))
	api.HandleFunc("/state", handlers.GetState(users)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/draft", handlers.PatchDraft(users)).Methods(http.MethodPatch, http.MethodOptions)

	// Docs
	if appCfg.DocsPath != "" {
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)
	}

	return r
}
