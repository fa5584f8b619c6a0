package handlers

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/club"
)

func UpsertClubHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertClubRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid club", err)
			return
		}
		c, err := store.UpsertClub(r.PathValue("clubID"), req.Name)
		if err != nil {
			writeError(w, "Failed to save club", err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func ListMembersHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := store.GetMembers(r.PathValue("clubID"))
		if err != nil {
			writeError(w, "Failed to get members", err)
			return
		}
		writeJSON(w, http.StatusOK, members)
	}
}

func AddMemberHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, "Invalid member", err)
			return
		}
		player, err := req.toPlayer()
		if err != nil {
			writeError(w, "Invalid member", err)
			return
		}
		if err := store.AddMember(r.PathValue("clubID"), player); err != nil {
			writeError(w, "Failed to add member", err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}
