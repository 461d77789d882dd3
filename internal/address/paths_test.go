package address

import (
	"os"
	"testing"
)

func withEnv(t *testing.T, kv map[string]string, fn func()) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
	fn()
}

func TestTildeExpandHomePresent(t *testing.T) {
	cases := []struct{ in, want string }{
		{"~", "/home/some_user"},
		{"~enene", "~enene"},
		{"~nope/", "~nope/"},
		{"~/yes", "/home/some_user/yes"},
		{"no/~/no", "no/~/no"},
		{"basic/path", "basic/path"},
	}
	withEnv(t, map[string]string{"HOME": "/home/some_user"}, func() {
		for _, c := range cases {
			if got := TildeExpand(c.in); got != c.want {
				t.Errorf("TildeExpand(%q) = %q, want %q", c.in, got, c.want)
			}
		}
	})
}

func TestTildeExpandHomeAbsent(t *testing.T) {
	t.Setenv("HOME", "placeholder")
	requireUnsetenv(t, "HOME")
	cases := []string{"~", "~enene", "~nope/", "~/yes", "no/~/no", "basic/path"}
	for _, c := range cases {
		if got := TildeExpand(c); got != c {
			t.Errorf("TildeExpand(%q) = %q, want unchanged", c, got)
		}
	}
}

func TestEnvVarExpand(t *testing.T) {
	cases := []struct{ in, want string }{
		{"$HOME", "/home/some_user"},
		{"$HOME/yes", "/home/some_user/yes"},
		{"start/$VALUE/end", "start/path/end"},
		{"$EMPTY/path", "/path"},
		{"start/$EMPTY/end", "start//end"},
		{"$NOT_SET", "$NOT_SET"},
		{"no/$NOT_SET/path", "no/$NOT_SET/path"},
		{"basic/path", "basic/path"},
	}
	withEnv(t, map[string]string{
		"HOME":  "/home/some_user",
		"VALUE": "path",
		"EMPTY": "",
	}, func() {
		requireUnsetenv(t, "NOT_SET")
		for _, c := range cases {
			if got := EnvVarExpand(c.in); got != c.want {
				t.Errorf("EnvVarExpand(%q) = %q, want %q", c.in, got, c.want)
			}
		}
	})
}

// requireUnsetenv ensures a variable is absent even if a parent test (or the
// host shell) happened to set it; t.Setenv only sets a restore-on-cleanup
// value, it can't express "unset".
func requireUnsetenv(t *testing.T, name string) {
	t.Helper()
	if err := os.Unsetenv(name); err != nil {
		t.Fatalf("unsetenv %s: %v", name, err)
	}
}
