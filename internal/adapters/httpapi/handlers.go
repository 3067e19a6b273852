package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/govrelay/internal/domain"
	"github.com/trebuchet-org/govrelay/internal/usecase"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) relay(w http.ResponseWriter, r *http.Request) {
	var body RelayBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, domain.ValidationError{Field: "body", Reason: err.Error()})
		return
	}

	result, err := s.handlers.Relay.Run(r.Context(), usecase.RelayRequestParams{
		Request:   body.Request,
		Signature: body.Signature,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RelayResponse{TxHash: result.TxHash})
}

func (s *Server) runOnce(w http.ResponseWriter, r *http.Request) {
	limit, err := queryUint(r, "max")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.Scan.Run(r.Context(), usecase.ScanProposalsParams{Max: limit})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RunOnceResponse{
		Processed: result.Processed,
		Bound:     result.Bound,
		Examined:  result.Examined,
		Failed: lo.Map(result.Failures, func(f usecase.ScanFailure, _ int) FailureView {
			return FailureView{ID: f.ID, Stage: f.Stage, Error: f.Err.Error()}
		}),
	})
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	limit, err := queryUint(r, "max")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := queryAccount(r, "account")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.handlers.List.Run(r.Context(), usecase.ListProposalsParams{Max: limit, Account: account})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(result.Proposals, func(v *usecase.ProposalView, _ int) ProposalResponse {
		return newProposalResponse(v)
	}))
}

func (s *Server) showProposal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := queryAccount(r, "account")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.handlers.Show.Run(r.Context(), usecase.ShowProposalParams{ID: id, Account: account})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProposalResponse(view))
}

func (s *Server) userVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	account, err := domain.ParseAddress("account", r.PathValue("account"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	vote, err := s.handlers.UserVote.Run(r.Context(), id, account)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newVoteView(vote))
}

func (s *Server) executeProposal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	receipt, err := s.handlers.Execute.Run(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.ExecutedProposal{ID: id, TxHash: receipt.TxHash})
}

func (s *Server) nonce(w http.ResponseWriter, r *http.Request) {
	account, err := domain.ParseAddress("account", r.PathValue("account"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	nonce, err := s.handlers.Nonce.Run(r.Context(), account)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NonceResponse{Account: account, Nonce: decimal(nonce)})
}

// writeError maps err onto a status: client faults are 400, everything else 500
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.Classify(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProposalNotFound):
		status = http.StatusNotFound
	case kind.ClientFault():
		status = http.StatusBadRequest
	default:
		s.log.Warn("request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "kind", kind, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: string(kind)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func pathID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a proposal id", r.PathValue("id"))}
	}
	return id, nil
}

func queryUint(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a non-negative integer", raw)}
	}
	return n, nil
}

func queryAccount(r *http.Request, name string) (*common.Address, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	account, err := domain.ParseAddress(name, raw)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func decimal(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
