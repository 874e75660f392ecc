package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/db"
	"github.com/jsphweid/patternmetrics/logger"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// maxBodyBytes bounds POST /evaluate request bodies.
const maxBodyBytes = 32 << 20

var (
	reportStore db.Store
	serveStore  string
	servePort   string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveStore, "store", db.StoreSQLite, "where evaluated reports are kept: none, sqlite or dynamo")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (env: PORT, default 8080)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the evaluation API",
	Long:  `Serves POST /evaluate, GET /reports and GET /reports/{id}.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.NewStore(serveStore)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
		reportStore = store

		port := servePort
		if port == "" {
			port = constants.GetPort()
		}
		server := &http.Server{
			Addr:              ":" + port,
			Handler:           cors.Default().Handler(NewRouter()),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Infof("Listening on %v", server.Addr)
		return server.ListenAndServe()
	},
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/evaluate", HandleEvaluate).Methods(http.MethodPost)
	router.HandleFunc("/reports", HandleListReports).Methods(http.MethodGet)
	router.HandleFunc("/reports/{id}", HandleGetReport).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warnf("Could not write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var input model.EvaluateRequestBody
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("could not unmarshal request body: "+err.Error()))
		return
	}

	piece := model.PieceFromPairs(input.Piece)
	patterns := model.PatternsFromPairs(input.Patterns)
	report, err := score(patterns, piece, input.Strict)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec := db.NewRecord("", "", report)
	if reportStore != nil {
		if err := reportStore.SaveReport(r.Context(), rec); err != nil {
			logger.Errorf("SaveReport failed: %v", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, model.EvaluateResponse{ID: rec.ID, Report: report})
}

var errNoStore = errors.New("no report store configured")

func HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if reportStore == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore)
		return
	}
	rec, err := reportStore.GetReport(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, db.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func HandleListReports(w http.ResponseWriter, r *http.Request) {
	if reportStore == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore)
		return
	}
	recs, err := reportStore.ListReports(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
