//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "aic_catalog/internal/adapters/http_server"
	"aic_catalog/internal/app"
	"aic_catalog/internal/domain"
	mysqlrepo "aic_catalog/internal/storage/mysql"
)

// ---------- helpers ----------
func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// nopCache satisfies the Cache port so the query service hits the DB directly.
type nopCache struct{}

func (nopCache) Get(context.Context, string, any) (bool, error)      { return false, nil }
func (nopCache) Set(context.Context, string, any, int) error         { return nil }
func (nopCache) Del(context.Context, string) error                   { return nil }
func (nopCache) GetBytes(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopCache) SetBytes(context.Context, string, []byte, int) error { return nil }

// ---------- the test ----------
func TestHTTP_EndToEnd_Tour_ES(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=aic",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "aic")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Apply your real migrations
	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed: a gallery, an audio file, and one tour with es + en rows.
	audio := domain.AudioFile{
		ID: 801,
		Translations: map[domain.Language]domain.AudioFileTranslation{
			domain.English: {TrackTitle: "Tour Intro", URL: "https://example.org/801.mp3"},
		},
	}
	if err := repo.UpsertAudioFiles(ctx, []domain.AudioFile{audio}); err != nil {
		t.Fatalf("UpsertAudioFiles: %v", err)
	}

	tourID := int64(22002)
	tour := domain.Tour{
		ID:              tourID,
		AudioCommentary: domain.AudioCommentary{AudioFile: audio},
		ImageURL:        "https://example.org/tour.jpg",
		Location: domain.Location{
			Coords: domain.Coords{Lat: 41.8796, Lon: -87.6237},
			Floor:  1,
		},
		Translations: map[domain.Language]domain.TourTranslation{
			domain.English: {
				Title:            "Essentials",
				ShortDescription: "Short.",
				LongDescription:  "Short.\r\rLong.",
				Credits:          "Copyright 2016 Art Institue of Chicago",
			},
			domain.Spanish: {
				Title:   "Imprescindibles",
				Credits: "Copyright 2016 Art Institue of Chicago",
			},
		},
	}
	if err := repo.UpsertTours(ctx, []domain.Tour{tour}); err != nil {
		t.Fatalf("UpsertTours: %v", err)
	}

	// Spin up the real router and handlers, cache disabled.
	q := app.NewQueryService(repo, nopCache{}, time.Minute)
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Hit the endpoint
	res, err := http.Get(fmt.Sprintf("%s/v1/tours/%d?lang=es", ts.URL, tourID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if cl := res.Header.Get("Content-Language"); cl != "es" {
		t.Fatalf("Content-Language: %q", cl)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	var body domain.TourView
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != tourID || body.Title != "Imprescindibles" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.ShortDescription != "Short." {
		t.Fatalf("expected English fallback short description, got %q", body.ShortDescription)
	}

	// Conditional revalidation: same ETag must short-circuit with 304.
	req, _ := http.NewRequest("GET", fmt.Sprintf("%s/v1/tours/%d?lang=es", ts.URL, tourID), nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET (revalidate): %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}

	// Unknown tour surfaces as a problem+json 404.
	res3, err := http.Get(ts.URL + "/v1/tours/999999")
	if err != nil {
		t.Fatalf("GET (missing): %v", err)
	}
	defer res3.Body.Close()
	if res3.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res3.StatusCode)
	}
}
