package api

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/abhisek/arise/internal/api/respond"
	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/engine"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/rewards"
	"github.com/abhisek/arise/internal/skills"
	"github.com/abhisek/arise/internal/transcribe"
)

const defaultPageSize = 10

type handler struct {
	eng               *engine.Engine
	transcriber       transcribe.Transcriber
	transcribeTimeout time.Duration
	log               zerolog.Logger
	version           string
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	})
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.eng.Stats(r.Context())
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}

type userResponse struct {
	User       *ledger.User               `json:"user"`
	Categories map[skills.Key]skills.Info `json:"categories"`
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.eng.GetOrCreateUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, userResponse{User: u, Categories: skills.Catalog()})
}

type entryRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

func (h *handler) submitEntry(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var (
		content   string
		entryType ledger.EntryType
	)
	if isMultipart(r) {
		text, transcribed, err := h.readUpload(w, r)
		if err != nil {
			respond.WriteErr(w, h.log, err)
			return
		}
		content, entryType = text, ledger.ParseEntryType(r.FormValue("type"))
		if transcribed {
			entryType = ledger.EntryAudio
		}
	} else {
		var in entryRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respond.WriteBadRequest(w, "invalid json")
			return
		}
		content, entryType = in.Content, ledger.ParseEntryType(in.Type)
	}

	res, err := h.eng.SubmitEntry(r.Context(), userID, content, entryType)
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mt, "multipart/")
}

// readUpload returns the entry text of a multipart submission. With an
// "audio" file attached the text is its transcript and transcribed is true;
// otherwise it is the "content" form field.
func (h *handler) readUpload(w http.ResponseWriter, r *http.Request) (text string, transcribed bool, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, transcribe.MaxAudioSize+1<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return "", false, &apperr.ValidationError{Field: "audio", Reason: "malformed or oversized upload"}
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		if content := r.FormValue("content"); content != "" {
			return content, false, nil
		}
		return "", false, &apperr.ValidationError{Field: "audio", Reason: "no audio file or content provided"}
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if err := transcribe.ValidateAudio(header.Size, mimeType); err != nil {
		return "", false, err
	}
	if h.transcriber == nil {
		return "", false, &apperr.UpstreamUnavailableError{Service: "transcription"}
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		return "", false, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.transcribeTimeout)
	defer cancel()
	text, err = h.transcriber.Transcribe(ctx, audio, mimeType)
	return text, err == nil, err
}

func (h *handler) listEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}

	page, err := h.eng.ListEntries(r.Context(), mux.Vars(r)["userId"], limit, offset)
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, page)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &apperr.ValidationError{Field: name, Reason: "must be a non-negative integer"}
	}
	return n, nil
}

func (h *handler) getQuests(w http.ResponseWriter, r *http.Request) {
	set, err := h.eng.TodaysQuests(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, set)
}

func (h *handler) completeQuest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.eng.CompleteQuest(r.Context(), vars["userId"], vars["questId"])
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

type rewardsResponse struct {
	Rewards []rewards.Milestone `json:"rewards"`
}

func (h *handler) getRewards(w http.ResponseWriter, r *http.Request) {
	ms, err := h.eng.DeriveMilestones(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteErr(w, h.log, err)
		return
	}
	if ms == nil {
		ms = []rewards.Milestone{}
	}
	respond.WriteJSON(w, http.StatusOK, rewardsResponse{Rewards: ms})
}
