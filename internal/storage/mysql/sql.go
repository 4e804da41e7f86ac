package mysql

const upsertGallerySQL = `
INSERT INTO galleries
  (id, gallery_id, title, display_title, lat, lon, floor, closed)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  gallery_id    = VALUES(gallery_id),
  title         = VALUES(title),
  display_title = VALUES(display_title),
  lat           = VALUES(lat),
  lon           = VALUES(lon),
  floor         = VALUES(floor),
  closed        = VALUES(closed),
  updated_at    = CURRENT_TIMESTAMP
`

const upsertAudioFileSQL = `
INSERT INTO audio_files (id)
VALUES (?)
ON DUPLICATE KEY UPDATE updated_at = CURRENT_TIMESTAMP
`

const upsertAudioFileI18nSQL = `
INSERT INTO audio_file_i18n
  (audio_file_id, lang, track_title, url, transcript)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  track_title = VALUES(track_title),
  url         = VALUES(url),
  transcript  = VALUES(transcript)
`

const upsertObjectSQL = `
INSERT INTO objects
  (id, object_id, title, thumbnail_url, image_url, tombstone, credits,
   image_copyright, lat, lon, floor, gallery_id, commentaries)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  object_id       = VALUES(object_id),
  title           = VALUES(title),
  thumbnail_url   = VALUES(thumbnail_url),
  image_url       = VALUES(image_url),
  tombstone       = VALUES(tombstone),
  credits         = VALUES(credits),
  image_copyright = VALUES(image_copyright),
  lat             = VALUES(lat),
  lon             = VALUES(lon),
  floor           = VALUES(floor),
  gallery_id      = VALUES(gallery_id),
  commentaries    = VALUES(commentaries),
  updated_at      = CURRENT_TIMESTAMP
`

const upsertTourSQL = `
INSERT INTO tours
  (id, weight, category_id, selector_number, audio_file_id, image_url,
   lat, lon, floor, stops, stop_count)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  weight          = VALUES(weight),
  category_id     = VALUES(category_id),
  selector_number = VALUES(selector_number),
  audio_file_id   = VALUES(audio_file_id),
  image_url       = VALUES(image_url),
  lat             = VALUES(lat),
  lon             = VALUES(lon),
  floor           = VALUES(floor),
  stops           = VALUES(stops),
  stop_count      = VALUES(stop_count),
  updated_at      = CURRENT_TIMESTAMP
`

const upsertTourI18nSQL = `
INSERT INTO tour_i18n
  (tour_id, lang, title, short_description, long_description, duration, credits)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title             = VALUES(title),
  short_description = VALUES(short_description),
  long_description  = VALUES(long_description),
  duration          = VALUES(duration),
  credits           = VALUES(credits)
`

const upsertExhibitionSQL = `
INSERT INTO exhibitions
  (id, title, short_description, image_url, start_date, end_date,
   gallery_id, lat, lon, floor)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title             = VALUES(title),
  short_description = VALUES(short_description),
  image_url         = VALUES(image_url),
  start_date        = VALUES(start_date),
  end_date          = VALUES(end_date),
  gallery_id        = VALUES(gallery_id),
  lat               = VALUES(lat),
  lon               = VALUES(lon),
  floor             = VALUES(floor),
  updated_at        = CURRENT_TIMESTAMP
`

const upsertEventSQL = `
INSERT INTO events
  (id, title, short_description, long_description, image_url, location_text,
   start_date, end_date, event_url, button_text)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title             = VALUES(title),
  short_description = VALUES(short_description),
  long_description  = VALUES(long_description),
  image_url         = VALUES(image_url),
  location_text     = VALUES(location_text),
  start_date        = VALUES(start_date),
  end_date          = VALUES(end_date),
  event_url         = VALUES(event_url),
  button_text       = VALUES(button_text),
  updated_at        = CURRENT_TIMESTAMP
`

const insertParseProblemSQL = `
INSERT INTO parse_problems (id, kind, code, message, data)
VALUES (?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Returns one tour joined with i18n twice: the requested language and the
// English canonical row. The repo prefers the localized column and falls back
// to English per field.
const getTourSQL = `
SELECT
  t.id,
  t.image_url,
  t.floor,
  t.stop_count,
  i.title, i.short_description, i.long_description, i.duration, i.credits,
  e.title, e.short_description, e.long_description, e.duration, e.credits
FROM tours t
LEFT JOIN tour_i18n i
  ON i.tour_id = t.id AND i.lang = ?
LEFT JOIN tour_i18n e
  ON e.tour_id = t.id AND e.lang = 'en'
WHERE t.id = ?
`

const listToursSQL = `
SELECT
  t.id,
  t.image_url,
  t.floor,
  t.stop_count,
  i.title, i.short_description, i.long_description, i.duration, i.credits,
  e.title, e.short_description, e.long_description, e.duration, e.credits
FROM tours t
LEFT JOIN tour_i18n i
  ON i.tour_id = t.id AND i.lang = ?
LEFT JOIN tour_i18n e
  ON e.tour_id = t.id AND e.lang = 'en'
ORDER BY t.weight, t.id
LIMIT ?
`

const getObjectSQL = `
SELECT
  o.id,
  o.title,
  o.tombstone,
  o.credits,
  o.image_url,
  o.thumbnail_url,
  o.floor,
  g.title
FROM objects o
LEFT JOIN galleries g
  ON g.id = o.gallery_id
WHERE o.id = ?
`

const listGalleriesSQL = `
SELECT id, gallery_id, title, display_title, lat, lon, floor, closed
FROM galleries
ORDER BY id
`

const listGalleriesByFloorSQL = `
SELECT id, gallery_id, title, display_title, lat, lon, floor, closed
FROM galleries
WHERE floor = ?
ORDER BY id
`

const listExhibitionsSQL = `
SELECT id, title, short_description, image_url, start_date, end_date,
       gallery_id, lat, lon, floor
FROM exhibitions
ORDER BY start_date, id
`

const listEventsSQL = `
SELECT id, title, short_description, long_description, image_url,
       location_text, start_date, end_date, event_url, button_text
FROM events
ORDER BY start_date, id
`
