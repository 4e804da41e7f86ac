package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"aic_catalog/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertGalleries(ctx context.Context, gs []domain.Gallery) error {
	for _, g := range gs {
		_, err := r.db.ExecContext(ctx, upsertGallerySQL,
			g.ID,
			g.GalleryID,
			g.Title,
			g.DisplayTitle,
			g.Location.Coords.Lat,
			g.Location.Coords.Lon,
			g.Location.Floor,
			g.Closed,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) UpsertAudioFiles(ctx context.Context, as []domain.AudioFile) error {
	for _, a := range as {
		if _, err := r.db.ExecContext(ctx, upsertAudioFileSQL, a.ID); err != nil {
			return err
		}
		for lang, tr := range a.Translations {
			_, err := r.db.ExecContext(ctx, upsertAudioFileI18nSQL,
				a.ID,
				string(lang),
				tr.TrackTitle,
				tr.URL,
				tr.Transcript,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Repo) UpsertObjects(ctx context.Context, os []domain.Object) error {
	for _, o := range os {
		commentaries, _ := json.Marshal(o.AudioCommentaries)
		_, err := r.db.ExecContext(ctx, upsertObjectSQL,
			o.ID,
			valInt64(o.ObjectID),
			o.Title,
			o.ThumbnailURL,
			o.ImageURL,
			valStr(o.Tombstone),
			valStr(o.Credits),
			valStr(o.ImageCopyright),
			o.Location.Coords.Lat,
			o.Location.Coords.Lon,
			o.Location.Floor,
			o.Gallery.ID,
			string(commentaries),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) UpsertTours(ctx context.Context, ts []domain.Tour) error {
	for _, t := range ts {
		var categoryID any
		if t.Category != nil {
			categoryID = t.Category.ID
		}
		stops, _ := json.Marshal(t.Stops)
		_, err := r.db.ExecContext(ctx, upsertTourSQL,
			t.ID,
			t.Order,
			categoryID,
			valInt64(t.AudioCommentary.SelectorNumber),
			t.AudioCommentary.AudioFile.ID,
			t.ImageURL,
			t.Location.Coords.Lat,
			t.Location.Coords.Lon,
			t.Location.Floor,
			string(stops),
			len(t.Stops),
		)
		if err != nil {
			return err
		}
		for lang, tr := range t.Translations {
			_, err := r.db.ExecContext(ctx, upsertTourI18nSQL,
				t.ID,
				string(lang),
				tr.Title,
				tr.ShortDescription,
				tr.LongDescription,
				valStr(tr.Duration),
				tr.Credits,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Repo) UpsertExhibitions(ctx context.Context, es []domain.Exhibition) error {
	for _, e := range es {
		var lat, lon, floor any
		if e.Location != nil {
			lat = e.Location.Coords.Lat
			lon = e.Location.Coords.Lon
			floor = e.Location.Floor
		}
		_, err := r.db.ExecContext(ctx, upsertExhibitionSQL,
			e.ID,
			e.Title,
			valStr(e.ShortDescription),
			e.ImageURL,
			e.StartDate,
			e.EndDate,
			valInt64(e.GalleryID),
			lat, lon, floor,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) UpsertEvents(ctx context.Context, es []domain.Event) error {
	for _, e := range es {
		_, err := r.db.ExecContext(ctx, upsertEventSQL,
			e.ID,
			e.Title,
			valStr(e.ShortDescription),
			e.LongDescription,
			e.ImageURL,
			valStr(e.LocationText),
			e.StartDate,
			e.EndDate,
			valStr(e.EventURL),
			valStr(e.ButtonText),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) LogParseProblem(ctx context.Context, p domain.ParseProblem) error {
	_, err := r.db.ExecContext(ctx, insertParseProblemSQL,
		uuid.New().String(),
		p.Kind,
		p.Code,
		p.Message,
		valStr(p.Data),
	)
	return err
}

// Diagnostics adapts the repo into a parse-problem sink: every report becomes
// one row. Failures are swallowed so a dead database cannot abort a parse.
type Diagnostics struct{ repo *Repo }

func NewDiagnostics(repo *Repo) *Diagnostics { return &Diagnostics{repo: repo} }

func (d *Diagnostics) Record(ctx context.Context, p domain.ParseProblem) {
	_ = d.repo.LogParseProblem(ctx, p)
}

func (r *Repo) GetTour(ctx context.Context, id int64, lang domain.Language) (domain.TourView, error) {
	row := r.db.QueryRowContext(ctx, getTourSQL, string(lang), id)
	tv, err := scanTourView(row.Scan, lang)
	if err == sql.ErrNoRows {
		return domain.TourView{}, domain.ErrNotFound
	}
	return tv, err
}

func (r *Repo) ListTours(ctx context.Context, lang domain.Language, limit int) ([]domain.TourView, error) {
	rows, err := r.db.QueryContext(ctx, listToursSQL, string(lang), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TourView, 0, limit)
	for rows.Next() {
		tv, err := scanTourView(rows.Scan, lang)
		if err != nil {
			return nil, err
		}
		out = append(out, tv)
	}
	return out, rows.Err()
}

func scanTourView(scan func(dest ...any) error, lang domain.Language) (domain.TourView, error) {
	var tv domain.TourView
	var loc, en [5]sql.NullString
	if err := scan(
		&tv.ID,
		&tv.ImageURL,
		&tv.Floor,
		&tv.StopCount,
		&loc[0], &loc[1], &loc[2], &loc[3], &loc[4],
		&en[0], &en[1], &en[2], &en[3], &en[4],
	); err != nil {
		return domain.TourView{}, err
	}

	pick := func(i int) string {
		if loc[i].Valid && strings.TrimSpace(loc[i].String) != "" {
			return loc[i].String
		}
		return en[i].String
	}
	tv.Title = pick(0)
	tv.ShortDescription = pick(1)
	tv.LongDescription = pick(2)
	tv.Duration = pick(3)
	tv.Credits = pick(4)
	tv.Language = domain.English
	if loc[0].Valid {
		tv.Language = lang
	}
	return tv, nil
}

func (r *Repo) GetObject(ctx context.Context, id int64) (domain.ObjectView, error) {
	row := r.db.QueryRowContext(ctx, getObjectSQL, id)

	var ov domain.ObjectView
	var tombstone, credits, galleryTitle sql.NullString
	if err := row.Scan(
		&ov.ID,
		&ov.Title,
		&tombstone,
		&credits,
		&ov.ImageURL,
		&ov.ThumbnailURL,
		&ov.Floor,
		&galleryTitle,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.ObjectView{}, domain.ErrNotFound
		}
		return domain.ObjectView{}, err
	}
	ov.Tombstone = tombstone.String
	ov.Credits = credits.String
	ov.GalleryTitle = galleryTitle.String
	return ov, nil
}

func (r *Repo) ListGalleries(ctx context.Context, floor *int) ([]domain.Gallery, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if floor != nil {
		rows, err = r.db.QueryContext(ctx, listGalleriesByFloorSQL, *floor)
	} else {
		rows, err = r.db.QueryContext(ctx, listGalleriesSQL)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Gallery, 0)
	for rows.Next() {
		var g domain.Gallery
		if err := rows.Scan(
			&g.ID,
			&g.GalleryID,
			&g.Title,
			&g.DisplayTitle,
			&g.Location.Coords.Lat,
			&g.Location.Coords.Lon,
			&g.Location.Floor,
			&g.Closed,
		); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repo) ListExhibitions(ctx context.Context) ([]domain.Exhibition, error) {
	rows, err := r.db.QueryContext(ctx, listExhibitionsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Exhibition, 0)
	for rows.Next() {
		var e domain.Exhibition
		var shortDescription sql.NullString
		var galleryID sql.NullInt64
		var lat, lon sql.NullFloat64
		var floor sql.NullInt64
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&shortDescription,
			&e.ImageURL,
			&e.StartDate,
			&e.EndDate,
			&galleryID,
			&lat, &lon, &floor,
		); err != nil {
			return nil, err
		}
		e.ShortDescription = shortDescription.String
		if galleryID.Valid {
			id := galleryID.Int64
			e.GalleryID = &id
		}
		if lat.Valid && lon.Valid && floor.Valid {
			e.Location = &domain.Location{
				Coords: domain.Coords{Lat: lat.Float64, Lon: lon.Float64},
				Floor:  int(floor.Int64),
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Event, 0)
	for rows.Next() {
		var e domain.Event
		var shortDescription, locationText, eventURL, buttonText sql.NullString
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&shortDescription,
			&e.LongDescription,
			&e.ImageURL,
			&locationText,
			&e.StartDate,
			&e.EndDate,
			&eventURL,
			&buttonText,
		); err != nil {
			return nil, err
		}
		e.ShortDescription = shortDescription.String
		e.LocationText = locationText.String
		e.EventURL = eventURL.String
		e.ButtonText = buttonText.String
		out = append(out, e)
	}
	return out, rows.Err()
}
