package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-browse/pkg/common"
	"github.com/matst80/slask-browse/pkg/loader"
	"github.com/matst80/slask-browse/pkg/messaging"
	"github.com/matst80/slask-browse/pkg/server"
	"github.com/matst80/slask-browse/pkg/storage"
	"github.com/matst80/slask-browse/pkg/tracking"
	"github.com/matst80/slask-browse/pkg/types"
)

var prefix = "catalog"

func init() {
	if p, ok := os.LookupEnv("TOPIC_PREFIX"); ok {
		prefix = p
	}
}

type app struct {
	ws   *server.WebServer
	conn *amqp.Connection
}

func (a *app) ConnectAmqp(amqpUrl string) {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	a.conn = conn
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open a channel: %v", err)
	}
	err = messaging.ListenToTopic(ch, prefix, messaging.CatalogUpdated, func(d amqp.Delivery) error {
		var change messaging.CatalogChange
		if err := json.Unmarshal(d.Body, &change); err != nil {
			log.Printf("Failed to unmarshal catalog change: %v", err)
			return nil
		}
		log.Printf("Got catalog change from %s (%d items), reloading", change.Source, change.ItemCount)
		if _, err := a.ws.Reload(context.Background()); err != nil {
			log.Printf("Reload after catalog change failed: %v", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to listen for catalog changes: %v", err)
	}
	log.Printf("Listening for catalog updates")
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	diskStorage := storage.NewDiskStorage(dataDir)

	var source loader.Loader
	if url := os.Getenv("CATALOG_URL"); url != "" {
		source = &loader.HTTPLoader{Url: url}
	} else {
		source = &loader.SnapshotLoader{Storage: diskStorage}
	}

	ws := server.NewWebServer(source)
	ws.Storage = diskStorage

	if redisUrl := os.Getenv("REDIS_URL"); redisUrl != "" {
		ws.Cache = server.NewCache(redisUrl, os.Getenv("REDIS_PASSWORD"), 0)
	}

	// Keep trk a true nil interface when the broker is unreachable;
	// assigning a nil *RabbitTracking into it would re-enable the
	// tracking path on a nil receiver.
	var trk types.Tracking
	amqpUrl := os.Getenv("RABBIT_URL")
	if amqpUrl != "" {
		rt, err := tracking.NewRabbitTracking(amqpUrl, prefix)
		if err != nil {
			log.Printf("Failed to connect tracking: %v", err)
		} else {
			trk = rt
			ws.Tracking = rt
			defer rt.Close()
		}
	}

	if count, err := ws.Reload(context.Background()); err != nil {
		// Load failure is terminal for the attempt; serve the empty
		// catalog and let an admin or a catalog_updated message retry.
		log.Printf("Initial catalog load failed: %v", err)
	} else {
		log.Printf("Loaded %d products", count)
	}

	a := &app{ws: ws}
	if amqpUrl != "" {
		a.ConnectAmqp(amqpUrl)
		ws.OnCatalogChange = func(itemCount int) {
			err := messaging.SendChange(a.conn, prefix, messaging.CatalogUpdated, messaging.CatalogChange{
				Source:    "browser",
				ItemCount: itemCount,
			})
			if err != nil {
				log.Printf("Failed to publish catalog change: %v", err)
			}
		}
	}

	auth := server.NewAdminAuth(os.Getenv("BROWSE_TOKEN_HASH"), os.Getenv("BROWSE_API_KEY"))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/browse", ws.Browse)
	mux.HandleFunc("GET /api/types", common.JsonHandler(trk, ws.GetTypes))
	mux.HandleFunc("GET /api/bounds", common.JsonHandler(trk, ws.GetBounds))
	mux.HandleFunc("GET /api/product/{index}", common.JsonHandler(trk, ws.GetProduct))
	mux.HandleFunc("POST /admin/reload", auth.Middleware(ws.AdminReload))

	listenAddress := os.Getenv("LISTEN_ADDRESS")
	if listenAddress == "" {
		listenAddress = ":8080"
	}
	srv := &http.Server{Addr: listenAddress, Handler: mux}

	go func() {
		log.Printf("starting server on %s", listenAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", srv.Addr, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server Shutdown Failed: %+v", err)
	}
	log.Println("Server gracefully stopped")
}
