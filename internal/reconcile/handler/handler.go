package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"partmatch-service/internal/config"
	"partmatch-service/internal/fileio"
	"partmatch-service/internal/metrics"
	"partmatch-service/internal/middleware"
	"partmatch-service/internal/ocr"
	"partmatch-service/internal/reconcile/model"
	recSvc "partmatch-service/internal/reconcile/service"
)

const uploadForm = `<html>
  <body>
    <h1>Parts table upload</h1>
    <form method="POST" enctype="multipart/form-data">
      <input type="file" name="image" /><br/><br/>
      <button type="submit">Upload</button>
    </form>
  </body>
</html>
`

// UploadForm: простая HTML-форма для ручной проверки загрузки.
func UploadForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, uploadForm)
}

// Upload: multipart-поле "image" -> OCR -> разбор -> сверка со справочником.
// r.Post("/upload", recHnd.Upload(cfg, logger, matcher, engine))
func Upload(cfg config.Config, logger zerolog.Logger, m *recSvc.Matcher, engine ocr.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		defer r.Body.Close()
		if err := r.ParseMultipartForm(cfg.MaxUploadBytes()); err != nil {
			log.Warn().Err(err).Msg("bad multipart form")
			writeError(w, bodyErrorStatus(err), "bad multipart form: "+err.Error())
			return
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing image field")
			return
		}
		defer file.Close()
		if limit := cfg.MaxUploadBytes(); limit > 0 && header.Size > limit {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d MB", cfg.MaxUploadMB))
			return
		}

		img, err := io.ReadAll(file)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "failed to read image: "+err.Error())
			return
		}

		// сбой OCR не валит запрос: пустой текст -> пустые списки
		ocrStart := time.Now()
		text, err := engine.Recognize(r.Context(), img)
		metrics.RecordOCR(time.Since(ocrStart), err)
		if err != nil {
			log.Error().Err(err).Str("engine", engine.Name()).Str("file", header.Filename).Msg("ocr failed")
			text = ""
		}
		log.Debug().Str("file", header.Filename).Int("bytes", len(img)).Str("text", text).Msg("ocr result")

		res := run(log, m, text, requestOptions(r, m.Options()))
		metrics.RecordResult("upload", res, time.Since(start))
		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		logDone(log, res, start)
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// Reconcile: то же без OCR, тело запроса уже распознанный текст
// (text/plain) или JSON {"text": "..."}.
func Reconcile(logger zerolog.Logger, m *recSvc.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, bodyErrorStatus(err), "failed to read body: "+err.Error())
			return
		}

		text := string(body)
		if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
			var req textRequest
			if err := json.Unmarshal(body, &req); err != nil {
				writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
				return
			}
			text = req.Text
		}

		res := run(log, m, text, requestOptions(r, m.Options()))
		metrics.RecordResult("text", res, time.Since(start))
		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		logDone(log, res, start)
	}
}

// Catalog: листы справочника и число строк в каждом.
func Catalog(m *recSvc.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat := m.Catalog()
		_ = writeJSON(w, http.StatusOK, map[string]any{
			"sheets": fileio.Summary(cat),
			"rows":   cat.Rows(),
		})
	}
}

// MethodNotAllowed: JSON вместо текстового ответа chi.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func run(log zerolog.Logger, m *recSvc.Matcher, text string, opt model.Options) model.Result {
	if e := log.Debug(); e.Enabled() {
		lines := 0
		for _, l := range strings.Split(text, "\n") {
			if strings.TrimSpace(l) != "" {
				lines++
			}
		}
		e.Int("lines", lines).
			Float64("threshold", opt.Threshold).
			Bool("column_gaps", opt.ColumnGaps).
			Int("catalog_rows", m.Catalog().Rows()).
			Msg("[DEBUG] reconcile input")
	}
	return m.RunWith(text, opt)
}

func logDone(log zerolog.Logger, res model.Result, start time.Time) {
	matched, unmatched, parseErrors := res.Counts()
	log.Info().
		Int("matched", matched).
		Int("unmatched", unmatched).
		Int("parse_errors", parseErrors).
		Dur("elapsed", time.Since(start)).
		Msg("reconcile done")
}
