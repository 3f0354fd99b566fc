package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/containeroo/tinyflags"
	"gopkg.in/yaml.v3"
)

// Config is the mock Jira configuration root.
type Config struct {
	Port          int      `yaml:"port"`
	DataDir       string   `yaml:"dataDir"`
	RandomDelay   bool     `yaml:"randomDelay"`
	Cookie        string   `yaml:"cookie,omitempty"`        // required Cookie header; empty = accept any
	FailComments  []string `yaml:"failComments,omitempty"`  // issue keys whose comment call answers 500
	SearchFile    string   `yaml:"searchFile,omitempty"`    // search response, relative to dataDir
	CommentsDir   string   `yaml:"commentsDir,omitempty"`   // <KEY>.json per issue, relative to dataDir
	MaxPageLength int      `yaml:"maxPageLength,omitempty"` // caps maxResults like a real Jira; 0 = no cap
}

// main starts the mock Jira with a required YAML config.
func main() {
	var (
		flagConfigPath string
		flagLogQuery   bool
	)

	tf := tinyflags.NewFlagSet("mock-jira", tinyflags.ExitOnError)
	tf.StringVar(&flagConfigPath, "config", "", "Path to mock-jira config.yaml (required)").Value()
	tf.BoolVar(&flagLogQuery, "log-query", false, "Log JQL queries").Value()

	if err := tf.Parse(os.Args[1:]); err != nil {
		log.Fatal("flag parse error:", err)
	}

	if strings.TrimSpace(flagConfigPath) == "" {
		log.Fatal("missing required --config=<path to yaml>")
	}

	cfg, err := loadConfig(flagConfigPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// absolute stays absolute
	if !filepath.IsAbs(cfg.DataDir) {
		base := filepath.Dir(flagConfigPath)
		cfg.DataDir, _ = filepath.Abs(filepath.Join(base, cfg.DataDir))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		if flagLogQuery {
			log.Printf("search jql=%q maxResults=%s", r.URL.Query().Get("jql"), r.URL.Query().Get("maxResults"))
		}
		handleSearch(w, r, cfg)
	})
	mux.HandleFunc("GET /rest/api/2/issue/{key}/comment", func(w http.ResponseWriter, r *http.Request) {
		handleComments(w, r, cfg)
	})

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Printf("Mock Jira listening on %s (data-dir: %s)", addr, cfg.DataDir)
	log.Fatal(http.ListenAndServe(addr, withCommon(mux, cfg)))
}

// loadConfig reads the YAML configuration file and applies defaults.
func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		cfg.Port = 8081
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./data"
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = "search.json"
	}
	if cfg.CommentsDir == "" {
		cfg.CommentsDir = "comments"
	}
	return cfg, nil
}

// withCommon applies delay, logging and cookie checks to every route.
func withCommon(next http.Handler, cfg Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.RandomDelay {
			applyRandomDelay(200, 1000)
		}
		log.Printf("%s %s", r.Method, r.URL.Path)

		if cfg.Cookie != "" && r.Header.Get("Cookie") != cfg.Cookie {
			writeJSONError(w, http.StatusUnauthorized, "You are not authenticated. Authentication required to perform this operation.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleSearch serves the configured search response, honoring maxResults.
func handleSearch(w http.ResponseWriter, r *http.Request, cfg Config) {
	if strings.TrimSpace(r.URL.Query().Get("jql")) == "" {
		writeJSONError(w, http.StatusBadRequest, "JQL query is required")
		return
	}

	var body map[string]any
	if err := readJSON(filepath.Join(cfg.DataDir, cfg.SearchFile), &body); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	issues, _ := body["issues"].([]any)
	limit := len(issues)
	if v, err := strconv.Atoi(r.URL.Query().Get("maxResults")); err == nil && v >= 0 {
		limit = v
	}
	if cfg.MaxPageLength > 0 && limit > cfg.MaxPageLength {
		limit = cfg.MaxPageLength
	}
	if limit < len(issues) {
		issues = issues[:limit]
	}

	body["issues"] = issues
	body["startAt"] = 0
	body["maxResults"] = limit
	body["total"] = len(issues)
	writeJSON(w, http.StatusOK, body)
}

// handleComments serves <commentsDir>/<KEY>.json or an empty page.
func handleComments(w http.ResponseWriter, r *http.Request, cfg Config) {
	key := r.PathValue("key")
	if slices.Contains(cfg.FailComments, key) {
		writeJSONError(w, http.StatusInternalServerError, "comment service unavailable")
		return
	}

	path := filepath.Join(cfg.DataDir, cfg.CommentsDir, filepath.Base(key)+".json")
	var page map[string]any
	if err := readJSON(path, &page); err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, map[string]any{"startAt": 0, "maxResults": 0, "total": 0, "comments": []any{}})
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// readJSON decodes the JSON file at path into out.
func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeJSONError writes a Jira style error body.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"errorMessages": []string{msg}, "errors": map[string]any{}})
}

// applyRandomDelay sleeps for a random duration in [minMs, maxMs].
func applyRandomDelay(minMs, maxMs int) {
	time.Sleep(time.Duration(minMs+rand.Intn(maxMs-minMs+1)) * time.Millisecond)
}
