package schematic

import (
	"fmt"
	"sort"
	"strings"
)

// signalPatterns maps pin name keywords to signal types, checked in
// order. More specific entries come before generic ones.
var signalPatterns = []struct {
	keyword string
	signal  string
}{
	{"SDA", "I2C data"},
	{"SCL", "I2C clock"},
	{"MOSI", "SPI"},
	{"MISO", "SPI"},
	{"SCK", "SPI clock"},
	{"CS", "SPI chip select"},
	{"GND", "Ground"},
	{"VCC", "Power"},
	{"VDD", "Power"},
	{"3V3", "Power"},
	{"3.3V", "Power"},
	{"5V", "Power"},
	{"12V", "Power"},
	{"VBAT", "Power"},
	{"VIN", "Power"},
	{"VOUT", "Power"},
	{"TX", "UART"},
	{"RX", "UART"},
	{"PWM", "PWM"},
	{"ADC", "Analog"},
	{"AIN", "Analog"},
	{"EN", "Enable"},
	{"RST", "Reset"},
	{"INT", "Interrupt"},
	{"CLK", "Clock"},
	{"GPIO", "GPIO"},
}

// rs485Pins are the transceiver pin names that mark a connection as
// RS-485.
var rs485Pins = map[string]bool{
	"DI": true, "RO": true, "DE": true,
	"RE": true, "/RE": true, "~RE": true,
}

// inferSignalType guesses the signal class of a connection from its pin
// names. CAN pins are checked before UART so CAN_TX/CAN_RX do not read
// as a UART link, RS-485 transceiver pins before generic keyword
// matching; a TX pin wired to an RX pin is a UART link.
func inferSignalType(fromPin, toPin string) string {
	fromUpper := strings.ToUpper(fromPin)
	toUpper := strings.ToUpper(toPin)
	combined := fromUpper + toUpper

	if strings.Contains(combined, "CAN") {
		switch {
		case strings.Contains(combined, "CANH"), strings.Contains(combined, "CAN_H"):
			return "CAN High"
		case strings.Contains(combined, "CANL"), strings.Contains(combined, "CAN_L"):
			return "CAN Low"
		case strings.Contains(combined, "CAN_TX"), strings.Contains(combined, "CANTX"):
			return "CAN TX"
		case strings.Contains(combined, "CAN_RX"), strings.Contains(combined, "CANRX"):
			return "CAN RX"
		}
		return "CAN"
	}
	if rs485Pins[fromUpper] || rs485Pins[toUpper] {
		return "RS-485"
	}
	if (strings.Contains(fromUpper, "TX") && strings.Contains(toUpper, "RX")) ||
		(strings.Contains(fromUpper, "RX") && strings.Contains(toUpper, "TX")) {
		return "UART"
	}
	for _, p := range signalPatterns {
		if strings.Contains(combined, p.keyword) {
			return p.signal
		}
	}
	return "Signal"
}

// ConnectionDoc renders the definition as a Markdown document with
// component, connection, and power net tables, for inclusion in design
// notes next to the schematic.
func ConnectionDoc(def *Definition) string {
	var b strings.Builder

	title := def.Title
	if title == "" {
		title = "Schematic"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Components\n\n")
	b.WriteString("| Reference | Part | Value | Footprint |\n")
	b.WriteString("|-----------|------|-------|-----------|\n")
	for _, ref := range def.sortedRefs() {
		c := def.Components[ref]
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			ref, c.LibID, orDash(c.Value), orDash(c.Footprint))
	}
	b.WriteString("\n")

	if len(def.Connections) > 0 {
		b.WriteString("## Connections\n\n")
		b.WriteString("| From | To | Signal |\n")
		b.WriteString("|------|----|--------|\n")
		for _, conn := range def.Connections {
			_, fromPin, _ := SplitPinRef(conn.From)
			_, toPin, _ := SplitPinRef(conn.To)
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				conn.From, conn.To, inferSignalType(fromPin, toPin))
		}
		b.WriteString("\n")
	}

	if len(def.PowerNets) > 0 {
		b.WriteString("## Power Nets\n\n")
		b.WriteString("| Net | Pins |\n")
		b.WriteString("|-----|------|\n")
		for _, net := range def.PowerNets {
			fmt.Fprintf(&b, "| %s | %s |\n", net.Net, strings.Join(net.Pins, ", "))
		}
		b.WriteString("\n")
	}

	if notes := designNotes(def); len(notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// designNotes emits review reminders derived from the definition.
func designNotes(def *Definition) []string {
	var notes []string

	mcus := 0
	for _, ref := range def.sortedRefs() {
		if classify(def.Components[ref].LibID) == classMCU {
			mcus++
		}
	}
	if mcus >= 2 {
		notes = append(notes,
			"Multiple MCUs or modules present: verify logic voltage levels match on every shared signal.")
	}

	nets := make([]string, 0, len(def.PowerNets))
	for _, net := range def.PowerNets {
		nets = append(nets, net.Net)
	}
	sort.Strings(nets)
	for i, net := range nets {
		if i > 0 && nets[i-1] == net {
			notes = append(notes,
				fmt.Sprintf("Power net %q is declared more than once; consider merging the pin lists.", net))
			break
		}
	}

	return notes
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
