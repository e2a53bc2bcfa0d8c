package maru

type startCommandHandler struct {
	startCommandHandlers []Handler
}

func newStartCommandHandler() *startCommandHandler {
	return &startCommandHandler{
		startCommandHandlers: make([]Handler, 0),
	}
}

func (h *startCommandHandler) Command() string {
	return "start"
}

func (h *startCommandHandler) CommandHelp(c *Context) string {
	return c.T("bot.system.commands.start.help")
}

// handle runs registered start handlers first; when none of them produced a
// response, fall back to a greeting that points at /help.
func (h *startCommandHandler) handle(c *Context) (Response, error) {
	for _, handler := range h.startCommandHandlers {
		resp, err := handler.Handle(c)
		if err != nil {
			return nil, err
		}
		if resp != nil {
			return resp, nil
		}
	}

	botName := c.Bot.Self.FirstName
	if botName == "" {
		botName = c.Bot.Self.UserName
	}

	return c.NewMessage(c.T("bot.system.start.message", "BotName", botName)), nil
}
