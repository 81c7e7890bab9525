package cli

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/userdesk/pkg/usersvc"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"userdesk": func() { os.Exit(Main()) },
	})
}

// TestScripts drives the userdesk command against fresh in-process users
// services. Each script gets its own enveloped service ($USERDESK_API_URL)
// and bare service ($BARE_URL).
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			enveloped := httptest.NewServer(usersvc.New(usersvc.NewRepository()))
			bare := httptest.NewServer(usersvc.New(usersvc.NewRepository(), usersvc.WithBare(true)))
			env.Defer(enveloped.Close)
			env.Defer(bare.Close)

			env.Setenv("USERDESK_API_URL", enveloped.URL+usersvc.DefaultBasePath)
			env.Setenv("BARE_URL", bare.URL+usersvc.DefaultBasePath)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			return nil
		},
	})
}
