package handler

import (
	"encoding/json"
	"time"

	"trackwatch/internal/alert"
)

type alertResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	TravelID  string          `json:"travelId"`
	AdminID   string          `json:"adminId"`
	AlertType string          `json:"alertType"`
	Severity  string          `json:"severity"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	Resolved  bool            `json:"resolved"`
}

type alertListResponse struct {
	Alerts []alertResponse `json:"alerts"`
}

type resolveResponse struct {
	Resolved bool `json:"resolved"`
}

type eventResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	TravelID  string          `json:"travelId"`
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type eventListResponse struct {
	Events []eventResponse `json:"events"`
}

func toAlertListResponse(alerts []alert.Alert) alertListResponse {
	out := alertListResponse{Alerts: make([]alertResponse, 0, len(alerts))}
	for _, a := range alerts {
		out.Alerts = append(out.Alerts, alertResponse{
			ID:        a.ID.String(),
			UserID:    a.UserID.String(),
			UserName:  a.UserName,
			TravelID:  a.TravelID.String(),
			AdminID:   a.AdminID.String(),
			AlertType: a.AlertType,
			Severity:  a.Severity,
			Message:   a.Message,
			Details:   a.Details,
			CreatedAt: a.CreatedAt,
			Resolved:  a.Resolved,
		})
	}
	return out
}

func toEventListResponse(events []alert.Event) eventListResponse {
	out := eventListResponse{Events: make([]eventResponse, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, eventResponse{
			ID:        e.ID.String(),
			UserID:    e.UserID.String(),
			UserName:  e.UserName,
			TravelID:  e.TravelID.String(),
			EventType: e.EventType,
			EventData: e.EventData,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
