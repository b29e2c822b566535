package models

type InputStats struct {
	TotalActiveTimeSeconds  int64   `json:"total_active_time_seconds"`
	TotalMouseMovement      float64 `json:"total_mouse_movement"`
	TotalMouseClickMovement float64 `json:"total_mouse_click_movement"`
	TotalMouseMovementTime  int64   `json:"total_mouse_movement_time"`
	TotalMouseClicks        int64   `json:"total_mouse_clicks"`
	TotalKeystrokes         int64   `json:"total_keystrokes"`
}
