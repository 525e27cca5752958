// Command mock-upstream serves in-memory REST collections for every service
// in the gateway configuration, so the gateway can be tried locally.
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/n9te9/go-graphql-rest-gateway/gateway"
	"github.com/n9te9/go-graphql-rest-gateway/resolver"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var idKeys = map[string]string{
	resolver.EntityUser:         "id",
	resolver.EntityRole:         "id",
	resolver.EntityLocation:     "location_id",
	resolver.EntityLodgingImage: "lodging_image_id",
	resolver.EntityLodging:      "lodging_id",
	resolver.EntityReservation:  "reservation_id",
}

type collection struct {
	mu     sync.Mutex
	entity string
	idKey  string
	nextID int
	rows   map[int]map[string]any
}

func newCollection(entity string) *collection {
	return &collection{
		entity: entity,
		idKey:  idKeys[entity],
		rows:   make(map[int]map[string]any),
	}
}

func (c *collection) register(r *mux.Router, prefix string) {
	r.HandleFunc(prefix+"/", c.list).Methods(http.MethodGet)
	r.HandleFunc(prefix, c.create).Methods(http.MethodPost)
	r.HandleFunc(prefix+"/{id:[0-9]+}", c.get).Methods(http.MethodGet)
	r.HandleFunc(prefix+"/{id:[0-9]+}", c.update).Methods(http.MethodPut)
	r.HandleFunc(prefix+"/{id:[0-9]+}", c.remove).Methods(http.MethodDelete)
}

func (c *collection) list(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int, 0, len(c.rows))
	for id := range c.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.rows[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *collection) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c.mu.Lock()
	defer c.mu.Unlock()

	row, ok := c.rows[id]
	if !ok {
		c.notFound(w, id)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (c *collection) create(w http.ResponseWriter, r *http.Request) {
	var row map[string]any
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	row[c.idKey] = c.nextID
	c.rows[c.nextID] = row
	writeJSON(w, http.StatusCreated, row)
}

func (c *collection) update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var row map[string]any
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		c.notFound(w, id)
		return
	}
	row[c.idKey] = id
	c.rows[id] = row
	writeJSON(w, http.StatusOK, row)
}

func (c *collection) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c.mu.Lock()
	defer c.mu.Unlock()

	affected := 0
	if _, ok := c.rows[id]; ok {
		delete(c.rows, id)
		affected = 1
	}
	writeJSON(w, http.StatusOK, affected)
}

func (c *collection) notFound(w http.ResponseWriter, id int) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", c.entity+" "+strconv.Itoa(id)+" does not exist")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, id, description string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"id":          id,
			"code":        status,
			"description": description,
		},
	})
}

// routers groups the configured services by listen address.
func routers(settings gateway.GatewayOption) (map[string]*mux.Router, error) {
	out := make(map[string]*mux.Router)
	for _, s := range settings.Services {
		u, err := url.Parse(s.Host)
		if err != nil {
			return nil, err
		}

		addr := ":" + u.Port()
		if u.Port() == "" {
			addr = ":80"
		}
		r, ok := out[addr]
		if !ok {
			r = mux.NewRouter()
			out[addr] = r
		}
		newCollection(s.Name).register(r, u.Path)
	}

	return out, nil
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := gateway.LoadGatewayOption(configPath)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := gateway.NewLogger(settings.Logging)
	if err != nil {
		return err
	}

	rs, err := routers(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	for addr, r := range rs {
		srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
		eg.Go(func() error {
			logger.Info().Str("addr", addr).Msg("mock upstream started")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return eg.Wait()
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "mock-upstream",
		Short:        "Serve in-memory REST services for the gateway",
		SilenceUsage: true,
		RunE:         run,
	}
	rootCmd.Flags().StringP("config", "c", "gateway.yaml", "path to the gateway configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
