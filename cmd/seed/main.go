// Applies the schema and seeds a small demo catalog for manual testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"telegram-cinehub-bot/internal/config"
	pg "telegram-cinehub-bot/internal/infra/db/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
  id             TEXT PRIMARY KEY,
  telegram_id    BIGINT NOT NULL UNIQUE,
  username       TEXT NOT NULL DEFAULT '',
  registered_at  TIMESTAMPTZ NOT NULL,
  last_active_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS contents (
  id             BIGSERIAL PRIMARY KEY,
  title          TEXT NOT NULL,
  type           TEXT NOT NULL,
  year           TEXT NOT NULL DEFAULT '',
  country        TEXT NOT NULL DEFAULT '',
  language       TEXT NOT NULL DEFAULT '',
  genres         TEXT NOT NULL DEFAULT '',
  description    TEXT NOT NULL DEFAULT '',
  poster_file_id TEXT NOT NULL DEFAULT '',
  parts_total    INT NOT NULL DEFAULT 0,
  views          BIGINT NOT NULL DEFAULT 0,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS parts (
  id                 BIGSERIAL PRIMARY KEY,
  content_id         BIGINT NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
  season             INT NOT NULL DEFAULT 1,
  number             INT NOT NULL,
  channel_message_id INT NOT NULL,
  UNIQUE (content_id, season, number)
);

CREATE TABLE IF NOT EXISTS favorites (
  user_tg_id BIGINT NOT NULL,
  content_id BIGINT NOT NULL REFERENCES contents(id) ON DELETE CASCADE,
  added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (user_tg_id, content_id)
);

CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value JSONB NOT NULL
);
`

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM contents;`).Scan(&existing); err != nil {
		log.Fatalf("count contents: %v", err)
	}
	if existing > 0 {
		fmt.Printf("%d contents already present. No changes.\n", existing)
		return
	}

	// Sample entries for manual testing. channel_message_id values assume a
	// content channel with at least a few media posts.
	seed := []struct {
		Title string
		Type  string
		Year  string
		Parts []int // channel message ids, one per part
	}{
		{"Yulduzlararo", "movie", "2014", []int{2}},
		{"Qasoskorlar", "series", "2019", []int{3, 4, 5}},
		{"Sehrlangan shahar", "anime", "2001", []int{6}},
	}

	for _, s := range seed {
		var id int64
		err := pool.QueryRow(ctx, `
INSERT INTO contents (title, type, year, parts_total)
VALUES ($1,$2,$3,$4) RETURNING id;`, s.Title, s.Type, s.Year, len(s.Parts)).Scan(&id)
		if err != nil {
			log.Fatalf("seed content %q: %v", s.Title, err)
		}
		for i, msgID := range s.Parts {
			_, err := pool.Exec(ctx, `
INSERT INTO parts (content_id, season, number, channel_message_id)
VALUES ($1,1,$2,$3);`, id, i+1, msgID)
			if err != nil {
				log.Fatalf("seed part %d of %q: %v", i+1, s.Title, err)
			}
		}
		fmt.Printf("seeded: %s (id=%d, parts=%d)\n", s.Title, id, len(s.Parts))
	}

	fmt.Println("✅ Seeding complete.")
}
