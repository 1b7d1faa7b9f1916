// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/sideline/internal/models"
)

// phrasebook holds the sentences of one language. Placeholders are
// {name} tokens filled from the row.
type phrasebook struct {
	kickoff        string
	passComplete   string
	passIncomplete string
	sack           string
	run            string
	punt           string
	fieldGoal      string
	extraPoint     string
	endOfQuarter   string
	other          string
	touchdown      string
	penalty        string
	newQuarter     string
	poeticOpen     string
	downs          map[string]string
	results        map[string]string
}

var phrasebooks = map[models.Language]phrasebook{
	models.English: {
		kickoff:        "{kicker} kicks off {distance} yards for {def} and {returner} brings it back {return} yards for {off}.",
		passComplete:   "On {down}, {passer} finds {receiver} for {yards} yards.",
		passIncomplete: "On {down}, {passer} looks for {receiver} but the pass falls incomplete.",
		sack:           "{passer} is sacked by {tackler} on {down}.",
		run:            "{rusher} carries for {yards} yards before {tackler} makes the stop.",
		punt:           "{punter} punts it away {distance} yards for {off} on {down}.",
		fieldGoal:      "{kicker} lines up from {distance} yards and the field goal is {result}.",
		extraPoint:     "{kicker} tries the extra point and it is {result}.",
		endOfQuarter:   "That is the end of the quarter with the score {home} to {away}.",
		other:          "{off} snaps it from the {yrdln}.",
		touchdown:      " Touchdown {off}!",
		penalty:        " Flag on the play: {ptype} on {pteam}, {pyards} yards.",
		newQuarter:     "Here we go in the {quarter}. ",
		poeticOpen:     "Like thunder rolling over autumn fields: ",
		downs:          map[string]string{"1": "first down", "2": "second down", "3": "third down", "4": "fourth down"},
		results:        map[string]string{"made": "good", "good": "good", "missed": "no good", "failed": "no good", "blocked": "blocked"},
	},
	models.Spanish: {
		kickoff:        "{kicker} patea {distance} yardas por {def} y {returner} la devuelve {return} yardas para {off}.",
		passComplete:   "En {down}, {passer} encuentra a {receiver} para {yards} yardas.",
		passIncomplete: "En {down}, {passer} busca a {receiver} pero el pase queda incompleto.",
		sack:           "{passer} es capturado por {tackler} en {down}.",
		run:            "{rusher} corre {yards} yardas hasta que {tackler} lo detiene.",
		punt:           "{punter} despeja {distance} yardas para {off} en {down}.",
		fieldGoal:      "{kicker} intenta desde {distance} yardas y el gol de campo es {result}.",
		extraPoint:     "{kicker} intenta el punto extra y es {result}.",
		endOfQuarter:   "Termina el cuarto con el marcador {home} a {away}.",
		other:          "{off} pone el balón en juego desde la {yrdln}.",
		touchdown:      " ¡Touchdown de {off}!",
		penalty:        " Pañuelo en el campo: {ptype} contra {pteam}, {pyards} yardas.",
		newQuarter:     "Arranca el {quarter}. ",
		poeticOpen:     "Como un trueno sobre los campos de otoño: ",
		downs:          map[string]string{"1": "primera oportunidad", "2": "segunda oportunidad", "3": "tercera oportunidad", "4": "cuarta oportunidad"},
		results:        map[string]string{"made": "bueno", "good": "bueno", "missed": "fallado", "failed": "fallado", "blocked": "bloqueado"},
	},
	models.German: {
		kickoff:        "{kicker} kickt {distance} Yards für {def} und {returner} trägt den Ball {return} Yards zurück für {off}.",
		passComplete:   "Im {down} findet {passer} {receiver} für {yards} Yards.",
		passIncomplete: "Im {down} sucht {passer} {receiver}, aber der Pass bleibt unvollständig.",
		sack:           "{passer} wird im {down} von {tackler} gesackt.",
		run:            "{rusher} läuft {yards} Yards, bevor {tackler} ihn stoppt.",
		punt:           "{punter} puntet {distance} Yards für {off} im {down}.",
		fieldGoal:      "{kicker} versucht es aus {distance} Yards und das Field Goal ist {result}.",
		extraPoint:     "{kicker} versucht den Extrapunkt und er ist {result}.",
		endOfQuarter:   "Das Viertel ist vorbei, es steht {home} zu {away}.",
		other:          "{off} bringt den Ball an der {yrdln} ins Spiel.",
		touchdown:      " Touchdown {off}!",
		penalty:        " Flagge auf dem Feld: {ptype} gegen {pteam}, {pyards} Yards.",
		newQuarter:     "Los geht es im {quarter}. ",
		poeticOpen:     "Wie Donner über herbstlichen Feldern: ",
		downs:          map[string]string{"1": "ersten Down", "2": "zweiten Down", "3": "dritten Down", "4": "vierten Down"},
		results:        map[string]string{"made": "gut", "good": "gut", "missed": "daneben", "failed": "daneben", "blocked": "geblockt"},
	},
}

var quarterNamesByLanguage = map[models.Language]map[string]string{
	models.English: quarterNames,
	models.Spanish: {"1": "primer cuarto", "2": "segundo cuarto", "3": "tercer cuarto", "4": "cuarto cuarto", "5": "tiempo extra"},
	models.German:  {"1": "ersten Viertel", "2": "zweiten Viertel", "3": "dritten Viertel", "4": "vierten Viertel", "5": "Overtime"},
}

// TemplateGenerator renders commentary from a fixed phrasebook. It never
// fails for a supported language and style.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a TemplateGenerator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate implements Generator.
func (g *TemplateGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	book, ok := phrasebooks[req.Language]
	if !ok {
		return "", fmt.Errorf("unsupported language %q", req.Language)
	}
	if !req.Style.Valid() {
		return "", fmt.Errorf("unsupported style %q", req.Style)
	}

	row := req.Row
	text := book.sentence(row)
	if isSet(row.Touchdown) {
		text += book.touchdown
	}
	if isSet(row.Penalty) {
		text += book.penalty
	}
	if row.Time == "15:00" && row.PlayType == "kickoff" {
		text = book.newQuarter + text
	}

	text = strings.NewReplacer(
		"{off}", row.PosTeam,
		"{def}", row.DefTeam,
		"{yrdln}", row.Yrdln,
		"{down}", book.downs[row.Down],
		"{yards}", row.YardsGained,
		"{distance}", row.KickDistance,
		"{return}", row.ReturnYards,
		"{kicker}", row.KickerPlayerName,
		"{returner}", row.KickoffReturnerPlayerName,
		"{passer}", row.PasserPlayerName,
		"{receiver}", row.ReceiverPlayerName,
		"{rusher}", row.RusherPlayerName,
		"{tackler}", row.SoloTackle1PlayerName,
		"{punter}", row.PunterPlayerName,
		"{result}", book.result(row.FieldGoalResult+row.ExtraPointResult),
		"{home}", row.TotalHomeScore,
		"{away}", row.TotalAwayScore,
		"{ptype}", row.PenaltyType,
		"{pteam}", row.PenaltyTeam,
		"{pyards}", row.PenaltyYards,
		"{quarter}", quarterNamesByLanguage[req.Language][row.Qtr],
	).Replace(text)

	switch req.Style {
	case models.StyleTweeter:
		text = fmt.Sprintf("%s #%svs%s #NFL", text, row.PosTeam, row.DefTeam)
	case models.StylePoetic:
		text = book.poeticOpen + text
	}
	return text, nil
}

func (b phrasebook) sentence(row models.TelemetryRow) string {
	switch row.PlayType {
	case "kickoff":
		return b.kickoff
	case "pass":
		if isSet(row.Sack) {
			return b.sack
		}
		if isSet(row.CompletePass) {
			return b.passComplete
		}
		return b.passIncomplete
	case "run":
		return b.run
	case "punt":
		return b.punt
	case "field_goal":
		return b.fieldGoal
	case "extra_point":
		return b.extraPoint
	case "":
		return b.endOfQuarter
	default:
		return b.other
	}
}

func (b phrasebook) result(raw string) string {
	if r, ok := b.results[raw]; ok {
		return r
	}
	return raw
}
