package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wordfetch/internal/app/apps"
	"wordfetch/internal/app/cfg"
	"wordfetch/internal/pkg/protocol"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type filenameCfg string

func (f filenameCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.Filename = string(f)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// resetFlags undoes flag values left behind by an earlier execution.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), clientCmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestClientCommand(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	dir := t.TempDir()
	words := writeFile(t, dir, "words.txt", "a,b,c,d,e")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	s, err := apps.NewServerApp(cfg.NewAddrCfg("127.0.0.1", port), filenameCfg(words))
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, nil)
	}()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 10*time.Millisecond)

	config := writeFile(t, dir, "config.json", fmt.Sprintf(`{
  "server_ip": "127.0.0.1",
  "server_port": %d,
  "k": 2,
  "p": 0,
  "filename": %q
}`, port, words))

	out := execute(t, "client", "--config", config)
	require.Regexp(t, `^a,1\nb,1\nc,1\nd,1\ne,1\nELAPSED_MS:\d+\n$`, out)
}

// firstRequest runs the client command against a listener that records the
// first request line and answers it with the end marker.
func firstRequest(t *testing.T, settings string, env map[string]string, args ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	requests := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		c := protocol.NewConn(conn)
		defer c.Close()
		line, err := c.ReadLine()
		if err != nil {
			return
		}
		requests <- line
		_ = c.WriteLine(protocol.EndOfData().String())
	}()

	config := writeFile(t, t.TempDir(), "config.json", fmt.Sprintf(
		`{"server_ip": "127.0.0.1", "server_port": %d, %s}`,
		ln.Addr().(*net.TCPAddr).Port, settings,
	))
	for k, v := range env {
		t.Setenv(k, v)
	}

	out := execute(t, append([]string{"client", "--config", config, "--quiet"}, args...)...)
	require.Regexp(t, `^ELAPSED_MS:\d+\n$`, out)
	select {
	case line := <-requests:
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("no request received")
		return ""
	}
}

type precedenceCase struct {
	name string
	env  map[string]string
	args []string
	want string
}

func runPrecedence(t *testing.T, settings string, cases []precedenceCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, firstRequest(t, settings, tc.env, tc.args...))
		})
	}
}

func TestClientCommandPageSizePrecedence(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	runPrecedence(t, `"k": 5, "p": 0`, []precedenceCase{
		{name: "flag", env: map[string]string{"K": "10"}, args: []string{"--k", "3"}, want: "0,3"},
		{name: "env", env: map[string]string{"K": "10"}, want: "0,10"},
		{name: "config", want: "0,5"},
	})
}

func TestClientCommandOffsetPrecedence(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	runPrecedence(t, `"k": 1, "p": 1`, []precedenceCase{
		{name: "flag", env: map[string]string{"P": "2"}, args: []string{"--p", "3"}, want: "3,1"},
		{name: "env", env: map[string]string{"P": "2"}, want: "2,1"},
		{name: "config", want: "1,1"},
	})
}
