// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package endpoint

import (
	"encoding/json"
	"net/http"

	authenticationv1 "k8s.io/api/authentication/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"go.kubeldap.dev/internal/httputil/httperr"
	"go.kubeldap.dev/internal/identity"
	"go.kubeldap.dev/internal/metrics"
	"go.kubeldap.dev/internal/plog"
)

type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

type tokenReviewHandler struct {
	verifier TokenVerifier
	recorder metrics.Recorder
}

// NewTokenReviewHandler returns the webhook token authenticator of the Kubernetes API server. It
// accepts the tokens issued by the auth handler.
func NewTokenReviewHandler(verifier TokenVerifier, recorder metrics.Recorder) http.Handler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return httperr.HandlerFunc((&tokenReviewHandler{verifier: verifier, recorder: recorder}).serve)
}

func (h *tokenReviewHandler) serve(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		return httperr.Newf(http.StatusMethodNotAllowed, "%s (try POST)", r.Method)
	}

	var review authenticationv1.TokenReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		return httperr.Wrap(http.StatusBadRequest, "invalid TokenReview", err)
	}
	if review.Kind != "TokenReview" {
		return httperr.Newf(http.StatusBadRequest, "invalid TokenReview kind %q", review.Kind)
	}

	apiVersion := review.APIVersion
	if apiVersion == "" {
		apiVersion = authenticationv1.SchemeGroupVersion.String()
	}
	response := authenticationv1.TokenReview{
		TypeMeta: metav1.TypeMeta{Kind: "TokenReview", APIVersion: apiVersion},
	}

	id, err := h.verifier.Verify(review.Spec.Token)
	if err != nil {
		plog.DebugErr("token review rejected the token", err)
		response.Status = authenticationv1.TokenReviewStatus{Authenticated: false, Error: "invalid token"}
	} else {
		response.Status = authenticationv1.TokenReviewStatus{Authenticated: true, User: userInfo(id)}
	}
	h.recorder.RecordTokenReview(response.Status.Authenticated)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		plog.Debug("could not encode response", "err", err)
	}
	return nil
}

func userInfo(id *identity.Identity) authenticationv1.UserInfo {
	var extra map[string]authenticationv1.ExtraValue
	if len(id.Extra) > 0 {
		extra = make(map[string]authenticationv1.ExtraValue, len(id.Extra))
		for k, v := range id.Extra {
			extra[k] = authenticationv1.ExtraValue{v}
		}
	}
	return authenticationv1.UserInfo{
		Username: id.Username,
		UID:      id.UID,
		Groups:   id.Groups,
		Extra:    extra,
	}
}
