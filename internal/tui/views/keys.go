package views

import "github.com/charmbracelet/bubbles/key"

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyLeft   = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day"))
	keyRight  = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day"))
	keyTop    = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top"))
	keyBottom = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom"))
	keyOpen   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	keyBack   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))

	keySearch     = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	keyStatusF    = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter"))
	keyCategoryF  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category filter"))
	keyAssigneeF  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assignee filter"))
	keyResetF     = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters"))
	keySortNext   = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort column"))
	keySortFlip   = key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "sort direction"))
	keySetStatus  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set status"))
	keyDelete     = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	keyExport     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv"))
	keyConfirm    = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm"))
	keyCancel     = key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel"))
	keyToggle     = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle"))
	keyAddItem    = key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add step"))
	keyRemoveItem = key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "remove step"))
	keyMore       = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "progress"))
	keyLess       = key.NewBinding(key.WithKeys("-"))
	keyPrint      = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "print preview"))
	keyPrevMonth  = key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[/]", "month"))
	keyNextMonth  = key.NewBinding(key.WithKeys("]", "pgdown"))
	keyToday      = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today"))
	keyTaskList   = key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "task list"))
	keyCalendar   = key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "calendar"))
	keySubmit     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
)
