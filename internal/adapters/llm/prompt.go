// Package llm adapts the external assignment collaborator (a chat-completion
// model) behind the AssignmentProposer port.
package llm

import (
	"fmt"
	"strconv"
	"strings"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

// instructionTemplate is the collaborator briefing. It is written in Dutch
// because the routes, addresses and historical examples are Dutch; %s is the
// per-bus stop maximum.
const instructionTemplate = "Je bent een expert in het maken van bezorgroutes in Nederland.\n" +
	"Je moet ALLE aangeleverde adressen verdelen over de beschikbare bussen.\n" +
	"\n" +
	"Algemene regels:\n" +
	"1. GEEN enkel adres mag worden overgeslagen, verwijderd of verdubbeld.\n" +
	"2. Elk adres komt precies één keer voor in precies één bus.\n" +
	"3. Maximaal %[1]s stops per bus.\n" +
	"4. Groepeer adressen geografisch logisch.\n" +
	"\n" +
	"Specifieke regels per dag en regio:\n" +
	"- Maandag (Monday): altijd 1 route Amsterdam. Alle adressen (ook buiten Amsterdam) in één bus, " +
	"maar houd zoveel mogelijk Amsterdam-clusters bij elkaar.\n" +
	"- Dinsdag (Tuesday): altijd 2 routes, beide in/om Amsterdam. Verdeel de Amsterdam-adressen over 2 bussen, " +
	"beide met maximaal %[1]s stops en minimaal 8 stops per bus als het totaal dat toelaat.\n" +
	"- Woensdag (Wednesday): zelfde als dinsdag: 2 routes Amsterdam.\n" +
	"- Donderdag (Thursday): 2 routes met duidelijke scheiding:\n" +
	"    • Route 1 = Amsterdam en directe omgeving.\n" +
	"    • Route 2 = Randstad: Rotterdam, Den Haag, Leiden, Schiedam en andere niet-Amsterdam-steden.\n" +
	"  Amsterdam en Randstad mogen nooit door elkaar in dezelfde bus.\n" +
	"- Vrijdag (Friday): 2 routes:\n" +
	"    • Route 1 = Amsterdam e.o.\n" +
	"    • Route 2 = Utrecht en omgeving (alle adressen in Utrecht e.d. moeten samen in één bus).\n" +
	"\n" +
	"Strikte scheiding:\n" +
	"- Adressen buiten Amsterdam (Utrecht, Rotterdam, Den Haag, Leiden, Schiedam etc.) " +
	"moeten altijd op een andere route zitten dan de pure Amsterdam-route.\n" +
	"- Als er zowel Amsterdam- als Utrecht-adressen zijn op dezelfde dag: Amsterdam in één bus, Utrecht in de andere.\n" +
	"- Als er Amsterdam + Randstad (Rotterdam/Den Haag/Leiden/Schiedam) zijn op donderdag: " +
	"Amsterdam in één bus, Randstad in de andere.\n" +
	"\n" +
	"Belangrijk:\n" +
	"- Gebruik zo min mogelijk bussen binnen de regels hierboven.\n" +
	"- Als er meer adressen zijn dan in één bus passen (>%[1]s stops), moet je verplicht over 2 bussen verdelen.\n" +
	"- Als er 2 bussen gebruikt worden, streef ernaar dat beide bussen minimaal 8 stops hebben, " +
	"als het totaal aantal stops dat toelaat.\n" +
	"- Output moet ALTIJD een geldig JSON-object zijn met alleen 'bus_routes', geen uitlegtekst.\n"

// BuildPrompt renders the collaborator instruction, the historical route
// examples and the new request into a single prompt.
func BuildPrompt(examples []ports.RouteExample, req domain.AssignmentRequest) string {
	var parts []string

	parts = append(parts, fmt.Sprintf(instructionTemplate, strconv.Itoa(req.MaxStopsPerBus)))

	parts = append(parts, "\nVOORBEELDEN UIT HET VERLEDEN:\n")
	for _, ex := range examples {
		parts = append(parts, fmt.Sprintf(
			"- Datum: %s, Bus: %s\n  Route: %s",
			ex.Date, ex.BusName, strings.Join(ex.Stops, " -> "),
		))
	}

	parts = append(parts, "\nNIEUWE AANVRAAG:\n")
	parts = append(parts, "Datum: "+req.Date)
	parts = append(parts, "Bussen: "+strings.Join(req.Buses, ", "))
	parts = append(parts, "Max stops per bus: "+strconv.Itoa(req.MaxStopsPerBus))

	parts = append(parts, "Adressen:")
	for _, s := range req.Stops {
		if s.Colli != nil {
			parts = append(parts, fmt.Sprintf("- %s (colli: %d)", s.Address, *s.Colli))
		} else {
			parts = append(parts, "- "+s.Address)
		}
	}

	parts = append(parts, answerFormat(req.Buses))

	return strings.Join(parts, "\n")
}

// answerFormat spells out the exact JSON shape the collaborator must answer
// in, keyed by the request's own bus names.
func answerFormat(buses []string) string {
	if len(buses) == 0 {
		buses = []string{"Bus"}
	}

	var b strings.Builder
	b.WriteString("\nAntwoord uitsluitend in dit JSON-formaat:\n{\n  \"bus_routes\": {\n")
	for i, bus := range buses {
		b.WriteString(fmt.Sprintf("    %q: [\"adres 1\", \"adres 2\", ...]", bus))
		if i < len(buses)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  }\n}\n")
	return b.String()
}
