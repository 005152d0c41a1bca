package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recipe-planner/internal/app"
	"recipe-planner/internal/config"
	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/shared"
	"recipe-planner/internal/shopping"
	"recipe-planner/internal/user"

	"go.uber.org/zap"
)

// Message is the part of an incoming Telegram message the handler needs.
type Message struct {
	TelegramID int64
	Username   string
	Text       string
}

// request is a parsed command bound to its sender.
type request struct {
	user    *user.User
	from    Message
	args    string
	session *Session
}

type command struct {
	usage string
	run   func(h *Handler, ctx context.Context, req *request) (string, error)
}

var commands = map[string]command{
	"/start":             {"", (*Handler).start},
	"/help":              {"", (*Handler).help},
	"/units":             {"", (*Handler).units},
	"/ingredients":       {"", (*Handler).ingredients},
	"/add_ingredient":    {"/add_ingredient <name> <unit> [position]", (*Handler).addIngredient},
	"/move":              {"/move <ingredient> <position>", (*Handler).move},
	"/delete_ingredient": {"/delete_ingredient <ingredient>", (*Handler).deleteIngredient},
	"/lists":             {"", (*Handler).lists},
	"/newlist":           {"/newlist <name>", (*Handler).newList},
	"/use":               {"/use <list>", (*Handler).use},
	"/show":              {"", (*Handler).show},
	"/buy":               {"/buy <ingredient> <quantity>", (*Handler).buy},
	"/check":             {"/check <ingredient>", (*Handler).check},
	"/remove":            {"/remove <ingredient>", (*Handler).remove},
	"/recipes":           {"", (*Handler).recipes},
	"/addrecipe":         {"/addrecipe <recipe>", (*Handler).addRecipe},
	"/removerecipe":      {"/removerecipe <recipe>", (*Handler).removeRecipe},
	"/metrics":           {"", (*Handler).metrics},
}

const helpText = `Commands:
/ingredients - your ingredients in shop order
/add_ingredient <name> <unit> [position]
/move <ingredient> <position>
/delete_ingredient <ingredient>
/lists - your shopping lists
/newlist <name> - create a list and use it
/use <list> - switch the active list
/show - show the active list
/buy <ingredient> <quantity>
/check <ingredient> - tick or untick
/remove <ingredient> - drop from the active list
/recipes - your recipes
/addrecipe <recipe> - add a recipe to the active list
/removerecipe <recipe> - take it off again
/units - known units

Paste a recipe link to import it.`

var errNoActiveList = shared.Invalid("no active list, create one with /newlist or pick one with /use")

// Handler turns chat messages into App calls and renders the replies.
type Handler struct {
	app      *app.App
	sessions *SessionRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(a *app.App, sessions *SessionRepository, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{app: a, sessions: sessions, cfg: cfg, logger: logger}
}

// Handle runs one message and returns the reply text.
func (h *Handler) Handle(ctx context.Context, msg Message) string {
	text := strings.TrimSpace(msg.Text)

	u, err := h.app.TelegramUser(ctx, msg.TelegramID, msg.Username)
	if err != nil {
		return h.render(msg, err)
	}

	session, err := h.sessions.GetActive(ctx, msg.TelegramID)
	if err != nil {
		return h.render(msg, err)
	}
	req := &request{user: u, from: msg, session: session}

	if isURL(text) {
		req.args = text
		reply, err := h.importRecipe(ctx, req)
		if err != nil {
			return h.render(msg, err)
		}
		return reply
	}

	name, args, _ := strings.Cut(text, " ")
	// "/show@my_bot" in group chats
	name, _, _ = strings.Cut(strings.ToLower(name), "@")
	cmd, ok := commands[name]
	if !ok {
		return "Unknown command. Send /help for the list."
	}
	req.args = strings.TrimSpace(args)

	reply, err := cmd.run(h, ctx, req)
	if err != nil {
		if errors.Is(err, errUsage) {
			return "Usage: " + cmd.usage
		}
		return h.render(msg, err)
	}
	return reply
}

var errUsage = errors.New("usage")

func (h *Handler) render(msg Message, err error) string {
	if shared.IsUserFacing(err) {
		return "❌ " + err.Error()
	}
	h.logger.Error("telegram command failed",
		zap.Int64("telegram_id", msg.TelegramID),
		zap.String("text", msg.Text),
		zap.Error(err),
	)
	return "❌ Internal error, please try again later."
}

func (h *Handler) start(ctx context.Context, req *request) (string, error) {
	return fmt.Sprintf("👋 Hi %s! I keep your ingredients in shop order and build shopping lists from your recipes.\n\n%s", req.user.Username, helpText), nil
}

func (h *Handler) help(ctx context.Context, req *request) (string, error) {
	return helpText, nil
}

func (h *Handler) units(ctx context.Context, req *request) (string, error) {
	units, err := h.app.Units(ctx)
	if err != nil {
		return "", err
	}
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return "Units: " + strings.Join(names, ", "), nil
}

func (h *Handler) ingredients(ctx context.Context, req *request) (string, error) {
	list, err := h.app.Ingredients(ctx, req.user.ID)
	if err != nil {
		return "", err
	}
	return formatIngredients(list), nil
}

func (h *Handler) addIngredient(ctx context.Context, req *request) (string, error) {
	fields := strings.Fields(req.args)

	var position *int
	if n := len(fields); n > 2 {
		if p, err := strconv.Atoi(fields[n-1]); err == nil {
			position = &p
			fields = fields[:n-1]
		}
	}
	if len(fields) < 2 {
		return "", errUsage
	}

	unit, err := h.app.UnitByName(ctx, fields[len(fields)-1])
	if err != nil {
		return "", err
	}
	ing, err := h.app.AddIngredient(ctx, req.user.ID, ingredient.NewIngredient{
		Name:     strings.Join(fields[:len(fields)-1], " "),
		UnitID:   unit.ID,
		Position: position,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Added %s (%s) at position %d.", ing.Name, ing.Unit, ing.Sort), nil
}

func (h *Handler) move(ctx context.Context, req *request) (string, error) {
	ref, position, ok := splitTrailingInt(req.args)
	if !ok {
		return "", errUsage
	}
	ing, err := h.app.ResolveIngredient(ctx, req.user.ID, ref)
	if err != nil {
		return "", err
	}
	pos, err := h.app.MoveIngredient(ctx, req.user.ID, ing.ID, position)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("↕️ %s is now at position %d.", ing.Name, pos), nil
}

func (h *Handler) deleteIngredient(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	ing, err := h.app.ResolveIngredient(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	if err := h.app.DeleteIngredient(ctx, req.user.ID, ing.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑 Deleted %s.", ing.Name), nil
}

func (h *Handler) lists(ctx context.Context, req *request) (string, error) {
	lists, err := h.app.Lists(ctx, req.user.ID)
	if err != nil {
		return "", err
	}
	return formatLists(lists, req.activeListID()), nil
}

func (h *Handler) newList(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	list, err := h.app.CreateList(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	if err := h.setActiveList(ctx, req, list.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("🛒 Created %s. It is now your active list.", list.Name), nil
}

func (h *Handler) use(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	list, err := h.app.ResolveList(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	if err := h.setActiveList(ctx, req, list.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("🛒 Now using %s.", list.Name), nil
}

func (h *Handler) show(ctx context.Context, req *request) (string, error) {
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	list, err := h.app.List(ctx, req.user.ID, listID)
	if err != nil {
		return "", err
	}
	return formatList(list), nil
}

func (h *Handler) buy(ctx context.Context, req *request) (string, error) {
	ref, amount, ok := splitTrailingInt(req.args)
	if !ok {
		return "", errUsage
	}
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	ing, err := h.app.ResolveIngredient(ctx, req.user.ID, ref)
	if err != nil {
		return "", err
	}
	entry, err := h.app.AddQuantity(ctx, req.user.ID, listID, ing.ID, shopping.Manual(), amount)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s: %d %s", ing.Name, entry.Quantity, ing.Unit), nil
}

func (h *Handler) check(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	ing, err := h.app.ResolveIngredient(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	checked, err := h.app.ToggleChecked(ctx, req.user.ID, listID, ing.ID)
	if err != nil {
		return "", err
	}
	if checked {
		return fmt.Sprintf("☑️ %s checked.", ing.Name), nil
	}
	return fmt.Sprintf("⬜ %s unchecked.", ing.Name), nil
}

func (h *Handler) remove(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	ing, err := h.app.ResolveIngredient(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	if err := h.app.RemoveFromList(ctx, req.user.ID, listID, ing.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("🗑 Removed %s from the list.", ing.Name), nil
}

func (h *Handler) recipes(ctx context.Context, req *request) (string, error) {
	list, err := h.app.Recipes(ctx, req.user.ID)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "You have no recipes yet. Paste a recipe link to import one.", nil
	}
	var sb strings.Builder
	sb.WriteString("📖 Recipes\n")
	for _, r := range list {
		fmt.Fprintf(&sb, "%d. %s (%d ingredients)\n", r.ID, r.Name, r.Items)
	}
	return sb.String(), nil
}

func (h *Handler) addRecipe(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	rec, err := h.app.ResolveRecipe(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	entries, err := h.app.AddRecipeToList(ctx, req.user.ID, listID, rec.ID, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("🍳 Added %d ingredients from %s.", len(entries), rec.Name), nil
}

func (h *Handler) removeRecipe(ctx context.Context, req *request) (string, error) {
	if req.args == "" {
		return "", errUsage
	}
	listID, err := req.requireList()
	if err != nil {
		return "", err
	}
	rec, err := h.app.ResolveRecipe(ctx, req.user.ID, req.args)
	if err != nil {
		return "", err
	}
	n, err := h.app.RemoveSource(ctx, req.user.ID, listID, shopping.FromRecipe(rec.ID))
	if err != nil {
		return "", err
	}
	if n == 0 {
		return fmt.Sprintf("%s had nothing on this list.", rec.Name), nil
	}
	return fmt.Sprintf("🗑 Removed %d quantities from %s.", n, rec.Name), nil
}

func (h *Handler) metrics(ctx context.Context, req *request) (string, error) {
	if h.cfg.AdminTelegramID == 0 || req.from.TelegramID != h.cfg.AdminTelegramID {
		return "⛔ Access denied: admin only.", nil
	}
	usage, err := h.app.Usage(7)
	if err != nil {
		return "", err
	}
	breakdown, err := h.app.Breakdown(7)
	if err != nil {
		return "", err
	}
	return formatMetrics(usage, breakdown, h.app.Health()), nil
}

func (h *Handler) importRecipe(ctx context.Context, req *request) (string, error) {
	res, err := h.app.ImportRecipe(ctx, req.user.ID, req.args, false)
	if err != nil {
		return "", err
	}
	return formatImport(res), nil
}

func (h *Handler) setActiveList(ctx context.Context, req *request, listID int64) error {
	return h.sessions.Save(ctx, req.from.TelegramID, req.user.ID, SessionContextData{ActiveListID: listID})
}

func (r *request) activeListID() int64 {
	if r.session == nil || r.session.UserID != r.user.ID {
		return 0
	}
	return r.session.Context.ActiveListID
}

func (r *request) requireList() (int64, error) {
	if id := r.activeListID(); id != 0 {
		return id, nil
	}
	return 0, errNoActiveList
}

// splitTrailingInt splits "green beans 3" into "green beans" and 3.
func splitTrailingInt(s string) (string, int, bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return "", 0, false
	}
	ref := strings.TrimSpace(s[:i])
	return ref, n, ref != ""
}

func isURL(text string) bool {
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}
