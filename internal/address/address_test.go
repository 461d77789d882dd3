package address

import "testing"

func strp(s string) *string { return &s }

func TestResolvePrecedence(t *testing.T) {
	// Scenario 1: §8 "Address precedence" — CLI wins outright, nothing
	// from env or config leaks through even though both are present.
	addr, pw := Resolve(Sources{
		CLIAddr:    strp("127.0.0.1:6600"),
		CLIPass:    nil,
		ConfigAddr: strp("127.0.0.1:7600"),
		EnvHost:    strp("192.168.0.1"),
		EnvPort:    strp("6601"),
	})
	if addr.Kind != KindIPAndPort || addr.Value != "127.0.0.1:6600" {
		t.Fatalf("got %+v", addr)
	}
	if pw != nil {
		t.Fatalf("expected no password, got %+v", pw)
	}
}

func TestResolveEnvPasswordAbstractSocket(t *testing.T) {
	// Scenario 2: §8 "Env-password + abstract socket".
	addr, pw := Resolve(Sources{EnvHost: strp("secret@@mpd")})
	if addr.Kind != KindAbstractSocket || addr.Value != "mpd" {
		t.Fatalf("got %+v", addr)
	}
	if pw == nil || pw.Plaintext() != "secret" {
		t.Fatalf("got password %+v", pw)
	}
}

func TestResolveTildeExpansion(t *testing.T) {
	// Scenario 3: §8 "Tilde expansion with env HOME".
	t.Setenv("HOME", "/home/u123")
	addr, _ := Resolve(Sources{ConfigAddr: strp("~/socket")})
	if addr.Kind != KindSocketPath || addr.Value != "/home/u123/socket" {
		t.Fatalf("got %+v", addr)
	}
}

func TestResolveDefault(t *testing.T) {
	addr, pw := Resolve(Sources{})
	if addr != Default() || pw != nil {
		t.Fatalf("got %+v %+v", addr, pw)
	}
}

func TestResolveEnvPortDefault(t *testing.T) {
	addr, _ := Resolve(Sources{EnvHost: strp("192.168.1.5")})
	if addr.Value != "192.168.1.5:6600" {
		t.Fatalf("got %+v", addr)
	}
}

func TestResolveEnvAbstractSocketNoPassword(t *testing.T) {
	addr, pw := Resolve(Sources{EnvHost: strp("@mpd")})
	if addr.Kind != KindAbstractSocket || addr.Value != "mpd" {
		t.Fatalf("got %+v", addr)
	}
	if pw != nil {
		t.Fatalf("expected nil password, got %+v", pw)
	}
}

func TestResolveConfigSocketPath(t *testing.T) {
	addr, _ := Resolve(Sources{ConfigAddr: strp("/run/mpd/socket")})
	if addr.Kind != KindSocketPath || addr.Value != "/run/mpd/socket" {
		t.Fatalf("got %+v", addr)
	}
}

func TestPasswordRedacted(t *testing.T) {
	p := NewPassword("hunter2")
	if p.String() != "*****" {
		t.Fatalf("String() = %q", p.String())
	}
	if p.GoString() != `"*****"` {
		t.Fatalf("GoString() = %q", p.GoString())
	}
	if p.Plaintext() != "hunter2" {
		t.Fatalf("Plaintext() lost the value")
	}
}
