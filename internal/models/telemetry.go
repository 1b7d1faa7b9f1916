// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package models

// TelemetryRow is one play of a game. All values are kept as received;
// empty strings mean the column was blank for this play.
type TelemetryRow struct {
	Yrdln                     string `json:"yrdln"`
	Time                      string `json:"time"`
	Qtr                       string `json:"qtr"`
	TotalHomeScore            string `json:"total_home_score"`
	TotalAwayScore            string `json:"total_away_score"`
	PlayType                  string `json:"play_type"`
	PosTeam                   string `json:"posteam"`
	DefTeam                   string `json:"defteam"`
	Down                      string `json:"down"`
	YardsGained               string `json:"yards_gained"`
	Drive                     string `json:"drive"`
	Sack                      string `json:"sack"`
	CompletePass              string `json:"complete_pass"`
	Penalty                   string `json:"penalty"`
	PenaltyTeam               string `json:"penalty_team"`
	PenaltyPlayerName         string `json:"penalty_player_name"`
	PenaltyYards              string `json:"penalty_yards"`
	PenaltyType               string `json:"penalty_type"`
	KickDistance              string `json:"kick_distance"`
	ReturnYards               string `json:"return_yards"`
	KickerPlayerName          string `json:"kicker_player_name"`
	KickoffReturnerPlayerName string `json:"kickoff_returner_player_name"`
	PassLength                string `json:"pass_length"`
	YdsToGo                   string `json:"ydstogo"`
	PasserPlayerName          string `json:"passer_player_name"`
	ReceiverPlayerName        string `json:"receiver_player_name"`
	RusherPlayerName          string `json:"rusher_player_name"`
	SoloTackle1PlayerName     string `json:"solo_tackle_1_player_name"`
	AssistTackle1PlayerName   string `json:"assist_tackle_1_player_name"`
	PunterPlayerName          string `json:"punter_player_name"`
	FieldGoalResult           string `json:"field_goal_result"`
	ExtraPointResult          string `json:"extra_point_result"`
	Touchdown                 string `json:"touchdown"`
}

// rowField binds a column name to its field in TelemetryRow.
type rowField struct {
	name    string
	display bool
	ref     func(*TelemetryRow) *string
}

// rowFields lists every column in display order.
var rowFields = []rowField{
	{"yrdln", true, func(r *TelemetryRow) *string { return &r.Yrdln }},
	{"time", true, func(r *TelemetryRow) *string { return &r.Time }},
	{"qtr", true, func(r *TelemetryRow) *string { return &r.Qtr }},
	{"total_home_score", true, func(r *TelemetryRow) *string { return &r.TotalHomeScore }},
	{"total_away_score", true, func(r *TelemetryRow) *string { return &r.TotalAwayScore }},
	{"play_type", true, func(r *TelemetryRow) *string { return &r.PlayType }},
	{"posteam", true, func(r *TelemetryRow) *string { return &r.PosTeam }},
	{"defteam", true, func(r *TelemetryRow) *string { return &r.DefTeam }},
	{"down", true, func(r *TelemetryRow) *string { return &r.Down }},
	{"yards_gained", true, func(r *TelemetryRow) *string { return &r.YardsGained }},
	{"drive", true, func(r *TelemetryRow) *string { return &r.Drive }},
	{"sack", true, func(r *TelemetryRow) *string { return &r.Sack }},
	{"complete_pass", false, func(r *TelemetryRow) *string { return &r.CompletePass }},
	{"penalty", true, func(r *TelemetryRow) *string { return &r.Penalty }},
	{"penalty_team", true, func(r *TelemetryRow) *string { return &r.PenaltyTeam }},
	{"penalty_player_name", true, func(r *TelemetryRow) *string { return &r.PenaltyPlayerName }},
	{"penalty_yards", true, func(r *TelemetryRow) *string { return &r.PenaltyYards }},
	{"penalty_type", true, func(r *TelemetryRow) *string { return &r.PenaltyType }},
	{"kick_distance", true, func(r *TelemetryRow) *string { return &r.KickDistance }},
	{"return_yards", true, func(r *TelemetryRow) *string { return &r.ReturnYards }},
	{"kicker_player_name", true, func(r *TelemetryRow) *string { return &r.KickerPlayerName }},
	{"kickoff_returner_player_name", true, func(r *TelemetryRow) *string { return &r.KickoffReturnerPlayerName }},
	{"pass_length", true, func(r *TelemetryRow) *string { return &r.PassLength }},
	{"ydstogo", true, func(r *TelemetryRow) *string { return &r.YdsToGo }},
	{"passer_player_name", true, func(r *TelemetryRow) *string { return &r.PasserPlayerName }},
	{"receiver_player_name", true, func(r *TelemetryRow) *string { return &r.ReceiverPlayerName }},
	{"rusher_player_name", true, func(r *TelemetryRow) *string { return &r.RusherPlayerName }},
	{"solo_tackle_1_player_name", true, func(r *TelemetryRow) *string { return &r.SoloTackle1PlayerName }},
	{"assist_tackle_1_player_name", true, func(r *TelemetryRow) *string { return &r.AssistTackle1PlayerName }},
	{"punter_player_name", true, func(r *TelemetryRow) *string { return &r.PunterPlayerName }},
	{"field_goal_result", true, func(r *TelemetryRow) *string { return &r.FieldGoalResult }},
	{"extra_point_result", true, func(r *TelemetryRow) *string { return &r.ExtraPointResult }},
	{"touchdown", false, func(r *TelemetryRow) *string { return &r.Touchdown }},
}

// DisplayColumns returns the column names shown in the telemetry table, in order.
func DisplayColumns() []string {
	cols := make([]string, 0, len(rowFields))
	for _, f := range rowFields {
		if f.display {
			cols = append(cols, f.name)
		}
	}
	return cols
}

// RowFromMap builds a row from column/value pairs. Unknown columns are ignored.
func RowFromMap(values map[string]string) TelemetryRow {
	var row TelemetryRow
	for _, f := range rowFields {
		if v, ok := values[f.name]; ok {
			*f.ref(&row) = v
		}
	}
	return row
}

// Get returns the value of a column, or "" for unknown columns.
func (r *TelemetryRow) Get(column string) string {
	for _, f := range rowFields {
		if f.name == column {
			return *f.ref(r)
		}
	}
	return ""
}

// DisplayValues returns the row's values in DisplayColumns order.
func (r *TelemetryRow) DisplayValues() []string {
	vals := make([]string, 0, len(rowFields))
	for _, f := range rowFields {
		if f.display {
			vals = append(vals, *f.ref(r))
		}
	}
	return vals
}
