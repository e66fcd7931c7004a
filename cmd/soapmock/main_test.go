package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"soapmock": main,
	})
}

// TestScripts runs the txtar scripts in testdata/script. They cover the
// commands that need no container runtime.
func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("SOAPMOCK_BASE_DIR", env.WorkDir+"/projects")
			env.Setenv("SOAPMOCK_CONFIG", "")
			return nil
		},
	})
}
