package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/elikia/elikia-client/internal/client/api"
	"github.com/elikia/elikia-client/internal/client/form"
	"github.com/elikia/elikia-client/internal/client/guard"
	"github.com/elikia/elikia-client/internal/client/list"
	"github.com/elikia/elikia-client/internal/client/session"
	"github.com/elikia/elikia-client/internal/client/transport"
	"github.com/elikia/elikia-client/internal/config"
	"github.com/elikia/elikia-client/internal/logger"
	"github.com/elikia/elikia-client/internal/models"
)

var (
	version   string
	buildDate string
)

// queryState mimics the browser location for one list view: navigation
// merges query parameters and marks the view for a reload cycle.
type queryState struct {
	values url.Values
	dirty  bool
}

func newQueryState() *queryState {
	return &queryState{values: url.Values{}}
}

// Navigate implements list.Navigator.
func (q *queryState) Navigate(merge url.Values) {
	for k, v := range merge {
		q.values[k] = v
	}
	q.dirty = true
}

// listView ties a list controller to its query state for one entity.
type listView[T any] struct {
	ctrl  *list.Controller[T]
	query *queryState
}

func newListView[T any](contentAPI *api.ContentClient[T], size int, log *zap.Logger) *listView[T] {
	q := newQueryState()
	return &listView[T]{
		ctrl:  list.NewController(q, contentAPI, size, log),
		query: q,
	}
}

// show runs query cycles until the URL settles, then prints the page.
// The first cycle on a fresh view redirects to fill in page/size
// defaults, so every view starts at page 0 with the default size.
func (v *listView[T]) show(ctx context.Context, role models.Role, path string, render func(T) string) {
	v.ctrl.Activate(role, path)
	v.query.dirty = true
	for v.query.dirty {
		v.query.dirty = false
		v.ctrl.HandleQuery(ctx, cloneValues(v.query.values))
	}

	if v.ctrl.ErrorMessage != "" {
		fmt.Println("Error:", v.ctrl.ErrorMessage)
		return
	}
	for _, item := range v.ctrl.Items {
		fmt.Println(render(item))
	}
	fmt.Printf("page %d/%d (size %d)\n", v.ctrl.CurrentPage+1, v.ctrl.TotalPages, v.ctrl.PageSize)
}

func cloneValues(q url.Values) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// client bundles everything the shell commands need.
type client struct {
	sess      *session.Service
	news      *api.ContentClient[models.News]
	events    *api.ContentClient[models.Event]
	workshops *api.ContentClient[models.Workshop]

	newsView     *listView[models.News]
	eventView    *listView[models.Event]
	workshopView *listView[models.Workshop]
	log          *zap.Logger
}

// repl runs the interactive shell loop.
func repl(c *client) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("elikia> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, register, logout, whoami,")
			fmt.Println("  list <news|event|workshop> [admin|member], manage <entity>, get <entity> <id>,")
			fmt.Println("  latest <entity>, create <event|workshop>, delete <entity> <id>, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			env := c.sess.Login(ctx, args[1], args[2])
			if !env.OK() {
				fmt.Println("Login failed:", env.Message)
				continue
			}
			fmt.Println("Logged in as", args[1], "role:", c.sess.Role())
		case "register":
			c.register(ctx, scanner)
		case "logout":
			c.sess.Logout()
			fmt.Println("Logged out")
		case "whoami":
			if !c.sess.IsAuthenticated() {
				fmt.Println("Not authenticated")
				continue
			}
			fmt.Println("Authenticated, role:", c.sess.Role())
		case "list":
			c.list(ctx, args[1:])
		case "manage":
			c.manage(ctx, args[1:])
		case "get":
			c.get(ctx, args[1:])
		case "latest":
			c.latest(ctx, args[1:])
		case "create":
			c.create(ctx, scanner, args[1:])
		case "delete":
			c.remove(ctx, scanner, args[1:])
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (c *client) register(ctx context.Context, scanner *bufio.Scanner) {
	req := models.RegisterRequest{
		FirstName:       prompt(scanner, "First name: "),
		LastName:        prompt(scanner, "Last name: "),
		Email:           prompt(scanner, "Email: "),
		Password:        prompt(scanner, "Password: "),
		ConfirmPassword: prompt(scanner, "Confirm password: "),
	}
	env := c.sess.Register(ctx, req)
	if !env.OK() {
		fmt.Println("Registration failed:", env.Message)
		return
	}
	fmt.Println("Registered. You can now log in.")
}

// viewPath builds the attempted path for a listing flavor, so the
// route guards can tell admin, member and public views apart.
func viewPath(entity, flavor string) string {
	switch flavor {
	case "admin":
		return "/admin/" + entity
	case "member":
		return "/member/" + entity
	default:
		return "/" + entity
	}
}

func (c *client) list(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: list <news|event|workshop> [admin|member]")
		return
	}
	flavor := ""
	if len(args) > 1 {
		flavor = args[1]
	}
	path := viewPath(args[0], flavor)

	if !c.allowed(path) {
		return
	}

	role := c.sess.Role()
	switch args[0] {
	case "news":
		c.newsView.show(ctx, role, path, func(n models.News) string {
			return fmt.Sprintf("[%d] %s (%s)", n.NewsID, n.Title, n.ContentStatus)
		})
	case "event":
		c.eventView.show(ctx, role, path, func(e models.Event) string {
			return fmt.Sprintf("[%d] %s @ %s (%s)", e.EventID, e.Title, e.Location, e.StartDate)
		})
	case "workshop":
		c.workshopView.show(ctx, role, path, func(w models.Workshop) string {
			return fmt.Sprintf("[%d] %s @ %s (%s)", w.WorkshopID, w.Title, w.Location, w.StartDate)
		})
	default:
		fmt.Println("Unknown entity:", args[0])
	}
}

// allowed evaluates the route guards for the attempted path and prints
// the redirect a browser would take when entry is denied.
func (c *client) allowed(path string) bool {
	var decision guard.Decision
	switch {
	case strings.Contains(path, "/admin"):
		decision = guard.RequireAdmin(c.sess, path)
	case strings.Contains(path, "/member"):
		decision = guard.RequireAuthenticated(c.sess, path)
	default:
		return true
	}
	if !decision.Allowed {
		target := decision.RedirectTo
		if len(decision.Query) > 0 {
			target += "?" + decision.Query.Encode()
		}
		fmt.Println("Access denied, redirecting to", target)
		return false
	}
	return true
}

// manage prints the full unpaginated management listing of an entity.
func (c *client) manage(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: manage <news|event|workshop>")
		return
	}
	if !c.allowed("/admin/" + args[0]) {
		return
	}
	switch args[0] {
	case "news":
		env, err := c.news.All(ctx)
		printLatest(env, err, func(n models.News) string {
			return fmt.Sprintf("[%d] %s (%s)", n.NewsID, n.Title, n.ContentStatus)
		})
	case "event":
		env, err := c.events.All(ctx)
		printLatest(env, err, func(e models.Event) string {
			return fmt.Sprintf("[%d] %s (%s)", e.EventID, e.Title, e.Visibility)
		})
	case "workshop":
		env, err := c.workshops.All(ctx)
		printLatest(env, err, func(w models.Workshop) string {
			return fmt.Sprintf("[%d] %s (%s)", w.WorkshopID, w.Title, w.Visibility)
		})
	default:
		fmt.Println("Unknown entity:", args[0])
	}
}

func (c *client) get(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: get <entity> <id>")
		return
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid id")
		return
	}
	switch args[0] {
	case "news":
		env, err := c.news.ByID(ctx, id)
		printDetail(env, err, func(n models.News) {
			fmt.Printf("%s\n%s\nmedia: %s\n", n.Title, n.Content, models.DisplayTypeOf(n.MediaList))
		})
	case "event":
		env, err := c.events.ByID(ctx, id)
		printDetail(env, err, func(e models.Event) {
			fmt.Printf("%s\n%s\n%s - %s @ %s\nmedia: %s\n",
				e.Title, e.Description, e.StartDate, e.EndDate, e.Location, models.DisplayTypeOf(e.MediaList))
		})
	case "workshop":
		env, err := c.workshops.ByID(ctx, id)
		printDetail(env, err, func(w models.Workshop) {
			fmt.Printf("%s\n%s\n%s - %s @ %s\nmedia: %s\n",
				w.Title, w.Description, w.StartDate, w.EndDate, w.Location, models.DisplayTypeOf(w.MediaList))
		})
	default:
		fmt.Println("Unknown entity:", args[0])
	}
}

func printDetail[T any](env models.Envelope[T], err error, render func(T)) {
	if err != nil {
		fmt.Println("Error:", api.Normalize(err, "Failed to load"))
		return
	}
	if !env.OK() || env.Data == nil {
		fmt.Println("Error:", env.Message)
		return
	}
	render(*env.Data)
}

func (c *client) latest(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: latest <entity>")
		return
	}
	switch args[0] {
	case "news":
		env, err := c.news.Latest(ctx, 0)
		printLatest(env, err, func(n models.News) string { return n.Title })
	case "event":
		env, err := c.events.Latest(ctx, 0)
		printLatest(env, err, func(e models.Event) string { return e.Title })
	case "workshop":
		env, err := c.workshops.Latest(ctx, 0)
		printLatest(env, err, func(w models.Workshop) string { return w.Title })
	default:
		fmt.Println("Unknown entity:", args[0])
	}
}

func printLatest[T any](env models.Envelope[[]T], err error, title func(T) string) {
	if err != nil {
		fmt.Println("Error:", api.Normalize(err, "Failed to load"))
		return
	}
	if !env.OK() || env.Data == nil {
		fmt.Println("Error:", env.Message)
		return
	}
	for _, item := range *env.Data {
		fmt.Println("-", title(item))
	}
}

// create walks through an event/workshop creation form.
func (c *client) create(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if len(args) < 1 || (args[0] != "event" && args[0] != "workshop") {
		fmt.Println("Usage: create <event|workshop>")
		return
	}
	if !c.allowed("/admin/" + args[0]) {
		return
	}

	kind, res := form.KindEvent, api.EventResource
	if args[0] == "workshop" {
		kind, res = form.KindWorkshop, api.WorkshopResource
	}
	ctrl := form.NewController(kind, res.PartKey, true, c.log)

	d := ctrl.Draft
	d.Title = prompt(scanner, "Title: ")
	d.Description = prompt(scanner, "Description: ")
	d.StartDate = prompt(scanner, "Start date (YYYY-MM-DD): ")
	d.EndDate = prompt(scanner, "End date (YYYY-MM-DD): ")
	d.Location = prompt(scanner, "Location: ")
	d.Address = prompt(scanner, "Address: ")
	d.Capacity, _ = strconv.Atoi(prompt(scanner, "Capacity: "))
	if prompt(scanner, "Members only? (y/N): ") == "y" {
		d.Visibility = models.VisibilityMemberOnly
	}
	d.VideoURL = prompt(scanner, "YouTube URL (optional): ")
	for {
		path := prompt(scanner, "Image file (empty to finish): ")
		if path == "" {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("Cannot read file:", err)
			continue
		}
		if msg := d.AttachFiles(form.Upload{Name: path, Data: data}); msg != "" {
			fmt.Println(msg)
		}
	}

	var send form.SendFunc
	if args[0] == "event" {
		send = c.events.Create
	} else {
		send = c.workshops.Create
	}
	if !ctrl.Submit(ctx, send) {
		fmt.Println("Error:", ctrl.ErrorMessage)
		return
	}
	fmt.Println("Created")
}

func (c *client) remove(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: delete <entity> <id>")
		return
	}
	if !c.allowed("/admin/" + args[0]) {
		return
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("Invalid id")
		return
	}
	if prompt(scanner, "Are you sure? (y/N): ") != "y" {
		return
	}
	var ok bool
	switch args[0] {
	case "news":
		ok = c.newsView.ctrl.Delete(ctx, id)
	case "event":
		ok = c.eventView.ctrl.Delete(ctx, id)
	case "workshop":
		ok = c.workshopView.ctrl.Delete(ctx, id)
	default:
		fmt.Println("Unknown entity:", args[0])
		return
	}
	if ok {
		fmt.Println("Deleted")
	}
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// main wires configuration, session storage, the authorizing transport
// and the API clients, then hands control to the shell.
func main() {
	options := config.Parse()

	if version != "" {
		fmt.Printf("Elikia Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
	}

	log, err := logger.New("warn")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store := session.NewStore(options.SessionFile)
	if err := store.Load(); err != nil {
		log.Fatal("cannot load session", zap.Error(err))
	}

	httpClient := &http.Client{
		Transport: transport.NewAuthorizer(nil, store, log),
		Timeout:   options.Timeout,
	}
	apiClient := api.New(options.BaseURL, httpClient, log)
	sess := session.NewService(apiClient, store, log)

	news := api.NewContent[models.News](apiClient, api.NewsResource)
	events := api.NewContent[models.Event](apiClient, api.EventResource)
	workshops := api.NewContent[models.Workshop](apiClient, api.WorkshopResource)

	c := &client{
		sess:         sess,
		news:         news,
		events:       events,
		workshops:    workshops,
		newsView:     newListView(news, options.PageSize, log),
		eventView:    newListView(events, options.PageSize, log),
		workshopView: newListView(workshops, options.PageSize, log),
		log:          log,
	}
	repl(c)
}
