// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sideline/internal/models"
)

var downNames = map[string]string{
	"1": "first down",
	"2": "second down",
	"3": "third down",
	"4": "fourth down",
}

var quarterNames = map[string]string{
	"1": "first quarter",
	"2": "second quarter",
	"3": "third quarter",
	"4": "fourth quarter",
	"5": "overtime",
}

// Prompt is the generation input for one variant.
type Prompt struct {
	Language models.Language
	Style    models.Style
	Text     string
}

// fact is one key of the play summary. Order is preserved in the prompt.
type fact struct {
	key   string
	value interface{}
}

// isSet reports whether a 0/1 flag column is set. Datasets export these
// as integers or floats.
func isSet(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f == 1
}

// playFacts summarizes row as ordered key/value pairs for a prompt.
//
//nolint:gocyclo // one branch per play type
func playFacts(row models.TelemetryRow) []fact {
	facts := []fact{
		{"starting_yard_line", row.Yrdln},
		{"quarter_time_remaining", row.Time},
		{"home_team_score", row.TotalHomeScore},
		{"away_team_score", row.TotalAwayScore},
	}
	add := func(k string, v interface{}) { facts = append(facts, fact{k, v}) }

	down := downNames[row.Down]
	touchdown := isSet(row.Touchdown)

	if row.Time == "15:00" {
		add("new quarter", true)
	}
	if touchdown {
		add("touchdown", "touchdown")
		add("number of drive", row.Drive)
	}
	if isSet(row.Sack) {
		add("sacked", "sacked")
	}
	if isSet(row.Penalty) {
		add("is penalty", true)
		add("penalty team", row.PenaltyTeam)
		add("penalty player", row.PenaltyPlayerName)
		add("penalty yards", row.PenaltyYards)
		add("penalty type", row.PenaltyType)
	}

	switch row.PlayType {
	case "kickoff":
		add("quarter", quarterNames[row.Qtr])
		add("play_type", row.PlayType)
		add("team", row.DefTeam)
		add("receiving team", row.PosTeam)
		add("distance", row.KickDistance)
		add("return yards", row.ReturnYards)
		add("player name", row.KickerPlayerName)
		add("returner player name", row.KickoffReturnerPlayerName)
	case "pass":
		add("play_type", row.PlayType)
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add("down", down)
		add("pass_length", row.PassLength)
		if !touchdown {
			add(down+" with yards to go", row.YdsToGo)
		}
		add("passer_player_name", row.PasserPlayerName)
		add("receiver_player_name", row.ReceiverPlayerName)
		add("passing_yards_gained", row.YardsGained)
		if isSet(row.CompletePass) {
			add("completion", "complete pass")
		} else {
			add("completion", "incomplete pass")
		}
	case "run":
		add("play type", row.PlayType)
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add("rusher_player_name", row.RusherPlayerName)
		add("rushing_yards_gained", row.YardsGained)
		add("tackle_1_player_name", row.SoloTackle1PlayerName)
		add("tackle_2_player_name", row.AssistTackle1PlayerName)
	case "punt":
		add("play_type", row.PlayType)
		add(down+" with yards to go", row.YdsToGo)
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add("punt_distance", row.KickDistance)
		add("punter_player_name", row.PunterPlayerName)
	case "field_goal":
		add("play_type", row.PlayType)
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add(down+" with yards to go", row.YdsToGo)
		add("field_goal_result", row.FieldGoalResult)
		add("kick_distance", row.KickDistance)
		add("kicker_player_name", row.KickerPlayerName)
	case "extra_point":
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add("extra_point_result", row.ExtraPointResult)
		add("kicker_player_name", row.KickerPlayerName)
	case "":
		add("offensive_team", row.PosTeam)
		add("defensive_team", row.DefTeam)
		add("end_of_the_quarter", true)
	}

	return facts
}

// encodeFacts renders facts as a JSON object in order.
func encodeFacts(facts []fact) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range facts {
		if i > 0 {
			buf.WriteString(", ")
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return "", err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return "", err
		}
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// BuildPrompts returns one prompt per style and language, styles outer.
func BuildPrompts(row models.TelemetryRow) ([]Prompt, error) {
	summary, err := encodeFacts(playFacts(row))
	if err != nil {
		return nil, fmt.Errorf("encode play summary: %w", err)
	}

	prompts := make([]Prompt, 0, len(models.Styles())*len(models.Languages()))
	for _, style := range models.Styles() {
		for _, lang := range models.Languages() {
			prompts = append(prompts, Prompt{
				Language: lang,
				Style:    style,
				Text: fmt.Sprintf("%s \n As a professional sportscaster, write a %s style commentary in %s using 2 sentences",
					summary, style, lang),
			})
		}
	}
	return prompts, nil
}
