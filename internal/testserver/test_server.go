package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/mcp"
	"github.com/rpggio/projectboard/internal/metrics"
	"github.com/rpggio/projectboard/internal/sqlite"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/rpggio/projectboard/internal/transport"
	"github.com/stretchr/testify/require"
)

// Options tunes the wired stack.
type Options struct {
	Token  string
	API    project.Options
	Policy state.MutationPolicy
}

type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	Controller *state.Controller
	Metrics    *metrics.Recorder
	Token      string
}

// New wires sqlite, the query service, the controller and the MCP handler
// behind the ops router.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	recorder := metrics.New()
	svc := project.NewService(sqlite.NewSlotRepository(db), opts.API, nil)
	controller := state.NewController(svc, state.Options{Policy: opts.Policy, Recorder: recorder}, nil)
	handler := mcp.NewHandler(controller)

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Handler: handler,
		State:   controller,
		Metrics: recorder.Handler(),
		Token:   opts.Token,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:     server,
		DB:         db,
		Controller: controller,
		Metrics:    recorder,
		Token:      opts.Token,
	}
}
