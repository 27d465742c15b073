package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/config"
	"jobscreen-engine/internal/discover"
	"jobscreen-engine/internal/domain"
	"jobscreen-engine/internal/events"
	"jobscreen-engine/internal/httpapi"
	"jobscreen-engine/internal/model"
	"jobscreen-engine/internal/secrets"
	"jobscreen-engine/internal/store"
)

func main() {
	setToken := flag.Bool("set-token", false, "read an admin API token from stdin, store it in the OS keychain, and exit")
	deleteToken := flag.Bool("delete-token", false, "remove the admin API token from the OS keychain and exit")
	flag.Parse()

	if *setToken || *deleteToken {
		if err := runTokenCommand(*setToken, os.Stdin); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("JOBSCREEN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; two would fight over the sqlite cache.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" detail=%q", wmsg)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobscreen.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	// Model bundle: a broken bundle means we refuse to serve.
	modelDir := cfg.App.ModelDir
	if !filepath.IsAbs(modelDir) {
		modelDir = filepath.Join(dataDir, modelDir)
	}
	loadBundle := func() (*model.Bundle, error) { return model.Load(modelDir) }
	bundle, err := loadBundle()
	if err != nil {
		if domain.IsConfigError(err) {
			log.Fatalf("model bundle rejected: %v", err)
		}
		log.Fatalf("model load failed: %v", err)
	}
	log.Printf("level=info msg=\"model loaded\" version=%s dim=%d degraded=%t",
		bundle.Version, bundle.Dim(), !bundle.HasForest())

	det, err := config.BuildDetector(cfg)
	if err != nil {
		log.Fatalf("red-flag catalog failed: %v", err)
	}

	analyzer := analyze.New(bundle, det, cfg.Ensemble)
	hub := events.NewHub()

	var finder *discover.Finder
	if cfg.Enrichment.DomainLookup {
		finder = discover.NewFinder(db.Pool, cfg.Enrichment.LookupPerHost, cfg.Enrichment.DomainsBlocked)
	}

	token, err := secrets.GetAPIToken()
	if err != nil {
		log.Printf("level=warn msg=\"keychain unavailable; admin routes disabled\" err=%v", err)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Analyzer:    analyzer,
		DB:          db.Pool,
		Hub:         hub,
		Finder:      finder,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		LoadBundle:  loadBundle,
		AdminToken:  token,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

// runTokenCommand stores or removes the admin API token. The token is
// read from in rather than argv so it never lands in shell history.
// The running engine picks a change up on its next start.
func runTokenCommand(set bool, in io.Reader) error {
	if !set {
		if err := secrets.DeleteAPIToken(); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
		fmt.Println("admin token removed; admin routes are disabled")
		return nil
	}

	fmt.Fprint(os.Stderr, "token: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read token: %w", err)
	}
	if err := secrets.SetAPIToken(strings.TrimSpace(line)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Println("admin token stored in the OS keychain")
	return nil
}
