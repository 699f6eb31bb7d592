package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/venkatd/absinthe/internal/eventbus"
	"github.com/venkatd/absinthe/internal/executor"
	"github.com/venkatd/absinthe/internal/schema"
	"github.com/venkatd/absinthe/internal/server"
)

// name is the parsed form of the Name scalar: trimmed, never empty.
type name string

func parseName(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot coerce %v (%T) to Name", value, value)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("cannot coerce blank string to Name")
	}
	return name(s), nil
}

func serializeName(value any) (any, error) {
	switch v := value.(type) {
	case name:
		return string(v), nil
	case string:
		return v, nil
	}
	return nil, fmt.Errorf("cannot serialize %v (%T) as Name", value, value)
}

type contact struct {
	id     string
	name   name
	email  string
	group  string
	active bool
}

type directory struct {
	mu       sync.RWMutex
	contacts map[string]*contact
	byEmail  map[string]*contact
	order    []string
	nextID   int
}

func newDirectory() *directory {
	d := &directory{
		contacts: make(map[string]*contact),
		byEmail:  make(map[string]*contact),
	}

	// Seed some initial data
	d.insert(&contact{name: "Ada Lovelace", email: "ada@example.com", group: "WORK", active: true})
	d.insert(&contact{name: "Grace Hopper", email: "grace@example.com", group: "WORK", active: false})
	d.insert(&contact{name: "Lin Carter", email: "lin@example.com", group: "FRIENDS", active: true})

	return d
}

// insert assigns the next id and stores the contact. Callers hold the lock
// or run before the server starts.
func (d *directory) insert(c *contact) *contact {
	d.nextID++
	c.id = fmt.Sprintf("contact-%d", d.nextID)
	d.contacts[c.id] = c
	d.byEmail[c.email] = c
	d.order = append(d.order, c.id)
	return c
}

func (d *directory) get(id string) any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if c, ok := d.contacts[id]; ok {
		return c
	}
	return nil
}

func (d *directory) list(group string, activeOnly bool) []*contact {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := []*contact{}
	for _, id := range d.order {
		c := d.contacts[id]
		if group != "" && c.group != group {
			continue
		}
		if activeOnly && !c.active {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (d *directory) add(n name, email, group string, active bool) (*contact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[email]; exists {
		return nil, fmt.Errorf("contact with email %s already exists", email)
	}
	return d.insert(&contact{name: n, email: email, group: group, active: active}), nil
}

// contactRuntime resolves fields against the directory. Root fields defend
// against argument maps missing a key they need: the coercer omits declared
// arguments the request never supplied.
type contactRuntime struct {
	dir *directory
}

var _ executor.Runtime = (*contactRuntime)(nil)

func (r *contactRuntime) ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	switch objectType + "." + field {
	case "Query.contact":
		id, ok := args["id"].(string)
		if !ok {
			return nil, &executor.ArgumentMismatchError{Args: args}
		}
		return r.dir.get(id), nil

	case "Query.contacts":
		// group is optional; absent means no filter. activeOnly always
		// arrives: its declared default fills in when the request omits it.
		group, _ := args["group"].(string)
		activeOnly, ok := args["activeOnly"].(bool)
		if !ok {
			return nil, &executor.ArgumentMismatchError{Args: args}
		}
		return r.dir.list(group, activeOnly), nil

	case "Mutation.addContact":
		input, ok := args["input"].(map[string]any)
		if !ok {
			return nil, &executor.ArgumentMismatchError{Args: args}
		}
		n, ok := input["name"].(name)
		if !ok {
			return nil, &executor.ArgumentMismatchError{Args: input}
		}
		email, ok := input["email"].(string)
		if !ok {
			return nil, &executor.ArgumentMismatchError{Args: input}
		}
		// group and active are nullable with defaults, so the keys are
		// always present but may hold an explicit null.
		group, ok := input["group"].(string)
		if !ok {
			return nil, fmt.Errorf("group must not be null")
		}
		active, ok := input["active"].(bool)
		if !ok {
			return nil, fmt.Errorf("active must not be null")
		}
		return r.dir.add(n, email, group, active)
	}

	c, ok := source.(*contact)
	if !ok {
		return nil, nil
	}
	switch field {
	case "id":
		return c.id, nil
	case "name":
		return c.name, nil
	case "email":
		return c.email, nil
	case "group":
		return c.group, nil
	case "active":
		return c.active, nil
	}
	return nil, nil
}

func newSchema() *schema.Schema {
	nameScalar := schema.NewScalar("Name", "A display name. Leading and trailing whitespace is trimmed; blank names are rejected.", parseName, serializeName)

	group := schema.NewType("Group", schema.TypeKindEnum, "").
		AddEnumValue(schema.NewEnumValue("FRIENDS", "")).
		AddEnumValue(schema.NewEnumValue("WORK", "")).
		AddEnumValue(schema.NewEnumValue("FAMILY", ""))

	contactType := schema.NewType("Contact", schema.TypeKindObject, "").
		AddField(schema.NewField("id", "", schema.NonNullType(schema.NamedType("ID")))).
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("Name")))).
		AddField(schema.NewField("email", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("group", "", schema.NonNullType(schema.NamedType("Group")))).
		AddField(schema.NewField("active", "", schema.NonNullType(schema.NamedType("Boolean"))))

	contactInput := schema.NewType("ContactInput", schema.TypeKindInputObject, "").
		AddInputField(schema.NewInputValue("name", "", schema.NonNullType(schema.NamedType("Name")))).
		AddInputField(schema.NewInputValue("email", "", schema.NonNullType(schema.NamedType("String")))).
		AddInputField(schema.NewInputValue("group", "", schema.NamedType("Group")).SetDefault("FRIENDS")).
		AddInputField(schema.NewInputValue("active", "", schema.NamedType("Boolean")).SetDefault(true))

	query := schema.NewType("Query", schema.TypeKindObject, "").
		AddField(schema.NewField("contact", "", schema.NamedType("Contact")).
			AddArgument(schema.NewInputValue("id", "", schema.NonNullType(schema.NamedType("ID"))))).
		AddField(schema.NewField("contacts", "", schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("Contact"))))).
			AddArgument(schema.NewInputValue("group", "", schema.NamedType("Group"))).
			AddArgument(schema.NewInputValue("activeOnly", "", schema.NamedType("Boolean")).SetDefault(false)))

	mutation := schema.NewType("Mutation", schema.TypeKindObject, "").
		AddField(schema.NewField("addContact", "", schema.NonNullType(schema.NamedType("Contact"))).
			AddArgument(schema.NewInputValue("input", "", schema.NonNullType(schema.NamedType("ContactInput")))))

	sch := schema.NewSchema("Contact directory demo").
		SetQueryType("Query").
		SetMutationType("Mutation").
		AddType(query).
		AddType(mutation).
		AddType(contactType).
		AddType(contactInput).
		AddType(group).
		AddType(nameScalar)
	for _, t := range schema.BuiltinTypes() {
		sch.AddType(t)
	}
	return sch
}

func main() {
	addr := flag.String("addr", ":8080", "the address to listen on")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	eventbus.Use(eventbus.New())

	h, err := server.New(&contactRuntime{dir: newDirectory()}, newSchema(),
		server.WithPretty(),
		server.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("GraphQL server starting on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
