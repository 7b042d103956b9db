package palette

import (
	"errors"

	"github.com/1broseidon/systool/internal/power"
)

var actionItems = []struct {
	op    power.Op
	label string
	icon  string
	meta  string
}{
	{power.OpShutdown, "Shutdown", "system-shutdown", "poweroff halt off"},
	{power.OpReboot, "Reboot", "system-reboot", "restart"},
	{power.OpLogout, "Logout", "system-log-out", "session exit"},
	{power.OpHibernate, "Hibernate", "system-suspend-hibernate", "disk"},
	{power.OpSleep, "Sleep", "system-suspend", "suspend standby"},
}

// ActionItems returns the five power actions in button order.
func ActionItems() []Item {
	items := make([]Item, 0, len(actionItems))
	for _, a := range actionItems {
		items = append(items, Item{
			Label:  a.label,
			Action: string(a.op),
			Icon:   a.icon,
			Meta:   a.meta,
		})
	}
	return items
}

// ChooseAction shows the power actions with message (typically the current
// time) in the message bar and returns the chosen operation.
func ChooseAction(b Backend, prompt, message string) (power.Op, error) {
	item, err := b.Show(prompt, ActionItems(), message)
	if err != nil {
		return "", err
	}
	return power.ParseOp(item.Action)
}

// Confirm asks a yes/no question through the palette. Cancelling the menu
// counts as "no".
func Confirm(b Backend, prompt, question string) (bool, error) {
	items := []Item{
		{Label: "No", Action: "no", Icon: "dialog-cancel", IsActive: true},
		{Label: "Yes", Action: "yes", Icon: "dialog-ok"},
	}
	item, err := b.Show(prompt, items, question)
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return item.Action == "yes", nil
}
