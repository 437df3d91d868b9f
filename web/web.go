// Package web provides an HTTP server for browsing a SIE file.
//
// The server exposes a JSON API over the parsed ledger: the company summary,
// the chart of accounts, opening and closing balances, vouchers and the
// problems found while parsing. The decoded source can be read and, unless
// the server is read-only, replaced. With watching enabled the file is
// reloaded when it changes on disk and connected clients are notified over
// server-sent events.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// File access is restricted to the served file.
package web

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/sie/ledger"
	"github.com/robinvdvleuten/sie/loader"
	"github.com/robinvdvleuten/sie/parser"
	"github.com/robinvdvleuten/sie/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	ReadOnly     bool
	WatchEnabled bool

	// ParserOptions are applied on every load. The server always parses in
	// collecting mode so problems can be listed next to the ledger.
	ParserOptions []parser.Option

	// Encoding names the file encoding used for reading and writing the
	// source. The default is PC8.
	Encoding string

	mu     sync.RWMutex
	ledger *ledger.Ledger
	errs   []error
	file   string // Absolute path of the served file

	// inputFile is the file path passed to New(), used only for initial loading.
	inputFile string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, file string) *Server {
	return NewWithVersion(port, file, "", "")
}

func NewWithVersion(port int, file, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		inputFile:  file,
		sseClients: make(map[chan string]struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.inputFile == "" {
		return fmt.Errorf("SIE file is required")
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load %s", filepath.Base(s.inputFile)))
	if err := s.reloadLedger(ctx); err != nil {
		loadTimer.End()
		return fmt.Errorf("failed to load %s: %w", s.inputFile, err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	mux := s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ledger", s.handleGetLedger)
	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("PUT /api/source", s.requireWritable(s.handlePutSource))
	mux.HandleFunc("GET /api/errors", s.handleGetErrors)
	mux.HandleFunc("GET /api/accounts", s.handleGetAccounts)
	mux.HandleFunc("GET /api/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/vouchers", s.handleGetVouchers)
	mux.HandleFunc("GET /api/export", s.handleGetExport)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// requireWritable is middleware that rejects write requests in read-only mode.
func (s *Server) requireWritable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.ReadOnly {
			http.Error(w, "Server is in read-only mode", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// loader returns a loader configured from the server settings.
func (s *Server) loader() *loader.Loader {
	opts := append([]parser.Option{}, s.ParserOptions...)
	opts = append(opts, parser.WithCollectErrors())
	return loader.New(
		loader.WithParserOptions(opts...),
		loader.WithEncoding(s.Encoding),
	)
}

// reloadLedger loads or reloads the ledger from disk. Parse problems are
// kept with the ledger; only a failure to read the file is returned. A file
// rejected outright leaves an empty ledger.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadLedger(ctx context.Context) error {
	file, err := filepath.Abs(s.inputFile)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	l, err := s.loader().Load(ctx, file)

	var errs []error
	if err != nil {
		var verrs *parser.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return err
		}
		errs = verrs.Errors
	}
	if l == nil {
		l = ledger.New()
	}

	s.mu.Lock()
	s.ledger = l
	s.errs = errs
	s.file = file
	s.mu.Unlock()

	return nil
}

// startWatcher watches the served file. It reloads the ledger and
// broadcasts SSE events when the file changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	s.mu.RLock()
	file := s.file
	s.mu.RUnlock()

	if err := watcher.Add(file); err != nil {
		log.Printf("Warning: failed to watch %s: %v", file, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// Remove and rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange reloads the ledger, renews the watch and notifies clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadLedger(ctx); err != nil {
		log.Printf("Failed to reload %s: %v", s.inputFile, err)
		return
	}

	s.mu.RLock()
	file := s.file
	s.mu.RUnlock()

	// Re-add to catch a file that was replaced
	if err := watcher.Add(file); err != nil {
		log.Printf("Warning: failed to watch %s: %v", file, err)
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
