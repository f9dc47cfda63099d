package cache

import (
	"context"
	"net"
	"testing"
	"time"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache("http://localhost:6379")
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	// Reserve a port, then free it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("no loopback:", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	c, err := NewRedisCache("redis://" + addr + "/0?dial_timeout=200ms&max_retries=-1")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, hit, err := c.Get(ctx, "artifact:x")
	if err == nil || hit || data != nil {
		t.Errorf("Get on unreachable server = (%q, %v, %v), want an error", data, hit, err)
	}
	if err := c.Set(ctx, "artifact:x", []byte("v"), time.Minute); err == nil {
		t.Error("Set on unreachable server should fail")
	}
}
