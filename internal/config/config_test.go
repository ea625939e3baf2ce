package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaultsUnmarshal(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Blog.PostsPerPage != 10 {
		t.Fatalf("posts_per_page want 10 got %d", cfg.Blog.PostsPerPage)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("database driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Upload.Driver != "local" {
		t.Fatalf("upload driver want local got %s", cfg.Upload.Driver)
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		t.Fatalf("allowed extensions should not be empty")
	}
	if cfg.Tracing.Enabled || cfg.Tracing.Exporter != "stdout" || cfg.Tracing.SampleRatio != 1 {
		t.Fatalf("unexpected tracing defaults: %+v", cfg.Tracing)
	}
	if cfg.Queue.Queues["default"] != 1 {
		t.Fatalf("default queue weight want 1 got %d", cfg.Queue.Queues["default"])
	}
}

func TestLogConfigToLoggerOptions(t *testing.T) {
	opts := LogConfig{Dir: "/tmp/x", Filename: "a.log", MaxSizeMB: 5, Compress: true}.ToLoggerOptions()
	if opts.Dir != "/tmp/x" || opts.Filename != "a.log" || opts.MaxSizeMB != 5 || !opts.Compress {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}
