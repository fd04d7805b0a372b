// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package report agrega um lote de feedbacks decodificados em um relatório
// (média das notas, distribuição por urgência, contagem por dia e listagem
// detalhada) e o renderiza como texto.
package report

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raywall/feedback-service/feedback"
	"github.com/rs/zerolog"
)

// InvalidDate agrupa registros cujo createdAt é curto demais para conter
// uma data.
const InvalidDate = "Data inválida"

// Distribution conta os registros por rótulo de urgência.
type Distribution struct {
	Alta  int `json:"alta"`
	Media int `json:"media"`
	Baixa int `json:"baixa"`
}

// DayCount é a quantidade de registros de um dia (YYYY-MM-DD).
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Item é a linha de detalhe de um registro, com os valores já formatados.
type Item struct {
	Nota      string  `json:"nota"`
	Urgency   string  `json:"urgency"`
	CreatedAt string  `json:"createdAt"`
	Descricao *string `json:"descricao,omitempty"`
}

// Report é o resultado da agregação. Total é sempre o tamanho do lote.
type Report struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Total       int       `json:"total"`
	// Average é nil quando nenhuma nota positiva foi encontrada.
	Average        *float64     `json:"average,omitempty"`
	InvalidRatings int          `json:"invalidRatings"`
	Urgency        Distribution `json:"urgency"`
	Days           []DayCount   `json:"days"`
	Items          []Item       `json:"items"`
}

// Empty indica que o lote não tinha registros.
func (r *Report) Empty() bool {
	return r.Total == 0
}

// Aggregate calcula o relatório de um lote. Anomalias de dados (nota
// inválida, data curta) nunca viram erro: são registradas em log e o
// registro continua contando no total e na listagem.
func Aggregate(ctx context.Context, records []feedback.Record, generatedAt time.Time) *Report {
	log := zerolog.Ctx(ctx)
	r := &Report{
		GeneratedAt: generatedAt,
		Total:       len(records),
		Days:        []DayCount{},
		Items:       make([]Item, 0, len(records)),
	}

	var sum float64
	var rated int
	days := map[string]int{}

	for _, rec := range records {
		if raw, ok := rec.Get(feedback.FieldNota); ok && raw != nil {
			nota, err := strconv.ParseFloat(strings.TrimSpace(feedback.Display(raw)), 64)
			if err != nil || math.IsInf(nota, 0) || math.IsNaN(nota) {
				r.InvalidRatings++
				log.Warn().Interface("nota", raw).Msg("invalid rating ignored")
				nota = 0
			}
			if nota > 0 {
				sum += nota
				rated++
			}
		}

		if u, ok := rec[feedback.FieldUrgency].(string); ok {
			switch u {
			case feedback.UrgencyAlta:
				r.Urgency.Alta++
			case feedback.UrgencyMedia:
				r.Urgency.Media++
			case feedback.UrgencyBaixa:
				r.Urgency.Baixa++
			}
		}

		if raw, ok := rec.Get(feedback.FieldCreatedAt); ok && raw != nil {
			days[dayKey(feedback.Display(raw), log)]++
		}

		item := Item{
			Nota:      feedback.Display(rec[feedback.FieldNota]),
			Urgency:   feedback.Display(rec[feedback.FieldUrgency]),
			CreatedAt: feedback.Display(rec[feedback.FieldCreatedAt]),
		}
		if d := rec[feedback.FieldDescricao]; d != nil {
			text := feedback.Display(d)
			item.Descricao = &text
		}
		r.Items = append(r.Items, item)
	}

	if rated > 0 {
		avg := sum / float64(rated)
		r.Average = &avg
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		r.Days = append(r.Days, DayCount{Date: k, Count: days[k]})
	}

	return r
}

// dayKey devolve os 10 primeiros caracteres do timestamp.
func dayKey(createdAt string, log *zerolog.Logger) string {
	if utf8.RuneCountInString(createdAt) < 10 {
		log.Warn().Str("createdAt", createdAt).Msg("invalid date ignored")
		return InvalidDate
	}
	return string([]rune(createdAt)[:10])
}
