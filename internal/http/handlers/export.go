package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"authentiq/pkg/zip"
)

// ExportReports packs the local activity log and usage snapshot into a zip
// archive: activity.json with the raw records, activity.csv for
// spreadsheets, usage.json with today's counters.
func (a *App) ExportReports(w http.ResponseWriter, r *http.Request) {
	activities := a.Store.Activities()
	limits := a.Store.Limits()

	activityJSON, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	usageJSON, err := json.MarshalIndent(limits, "", "  ")
	if err != nil {
		a.error(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	csvBuf := &bytes.Buffer{}
	cw := csv.NewWriter(csvBuf)
	_ = cw.Write([]string{"id", "type", "title", "score", "word_count", "status", "timestamp"})
	for _, act := range activities {
		_ = cw.Write([]string{
			act.ID,
			string(act.Type),
			act.Title,
			strconv.FormatFloat(act.Score, 'f', 1, 64),
			strconv.Itoa(act.WordCount),
			act.Status(),
			act.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		a.error(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	archive, err := zip.Archive([]zip.Entry{
		{Name: "activity.json", Data: activityJSON},
		{Name: "activity.csv", Data: csvBuf.Bytes()},
		{Name: "usage.json", Data: usageJSON},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("report export failed")
		a.error(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	filename := fmt.Sprintf("authentiq-reports-%s.zip", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
