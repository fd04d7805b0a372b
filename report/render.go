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
package report

import (
	"fmt"
	"strings"
	"time"
)

// ContentType do documento gerado por Render.
const ContentType = "text/plain; charset=utf-8"

// ObjectName é o nome determinístico do relatório gerado na data informada.
func ObjectName(date time.Time) string {
	return "weekly-report-" + date.Format(time.DateOnly) + ".txt"
}

// Render produz o texto do relatório. Um relatório vazio contém apenas o
// cabeçalho e o marcador de ausência de feedbacks.
func Render(r *Report) string {
	var b strings.Builder

	b.WriteString("=== RELATÓRIO SEMANAL DE FEEDBACKS ===\n")
	fmt.Fprintf(&b, "Data de geração: %s\n\n", r.GeneratedAt.Format(time.DateOnly))

	if r.Empty() {
		b.WriteString("Nenhum feedback encontrado no período.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Total de feedbacks: %d\n\n", r.Total)

	if r.Average != nil {
		fmt.Fprintf(&b, "Média geral das notas: %.2f\n", *r.Average)
	}

	b.WriteString("\n=== DISTRIBUIÇÃO POR URGÊNCIA ===\n")
	fmt.Fprintf(&b, "Alta: %d feedbacks\n", r.Urgency.Alta)
	fmt.Fprintf(&b, "Média: %d feedbacks\n", r.Urgency.Media)
	fmt.Fprintf(&b, "Baixa: %d feedbacks\n", r.Urgency.Baixa)

	b.WriteString("\n=== QUANTIDADE DE AVALIAÇÕES POR DIA ===\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "%s: %d avaliações\n", d.Date, d.Count)
	}

	b.WriteString("\n=== DETALHES DOS FEEDBACKS ===\n")
	for i, item := range r.Items {
		fmt.Fprintf(&b, "%d. Nota: %s | Urgência: %s | Data: %s\n", i+1, item.Nota, item.Urgency, item.CreatedAt)
		if item.Descricao != nil {
			fmt.Fprintf(&b, "   Descrição: %s\n", *item.Descricao)
		}
		b.WriteString("\n")
	}

	return b.String()
}
