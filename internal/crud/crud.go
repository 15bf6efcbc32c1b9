package crud

import (
	"fmt"
	"strings"

	"github.com/cmmoran/pyscaffold/internal/model"
	"github.com/cmmoran/pyscaffold/internal/naming"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

const pageHeader = "from sqlalchemy.orm import Session\n\nfrom . import models, schemas\n"

type Options struct {
	// PydanticV2 serializes create schemas with model_dump instead of dict.
	PydanticV2 bool
}

func GetName(m *model.Model) string { return "get_" + m.SnakeName() }
func ListName(m *model.Model) string {
	return "get_" + naming.Plural(m.Name, m.Plural)
}
func CreateName(m *model.Model) string { return "create_" + m.SnakeName() }
func GetByName(m *model.Model, f *model.Field) string {
	return GetName(m) + "_by_" + f.Name
}

// IDArg is the name of the primary key parameter, e.g. "user_id".
func IDArg(m *model.Model) string { return m.SnakeName() + "_id" }

func db() source.Attribute { return source.Attr("db", "Session") }

// Functions returns the CRUD functions for m: lookup by primary key, lookup
// by each unique field, paged listing and creation.
func Functions(m *model.Model, opts Options) ([]*source.Function, error) {
	var (
		out   = make([]*source.Function, 0, 4)
		class = "models." + naming.ClassName(m.Name)
		add   = func(f *source.Function, err error) error {
			if err != nil {
				return fmt.Errorf("model %s: %w", m.Name, err)
			}
			out = append(out, f)
			return nil
		}
	)

	if pk := m.PrimaryKey(); pk != nil {
		err := add(source.NewFunction(GetName(m),
			fmt.Sprintf("db.query(%s).filter(%s.%s == %s).first()", class, class, pk.Name, IDArg(m)),
			source.WithArguments(db(), source.Attr(IDArg(m), pk.Datatype)),
		))
		if err != nil {
			return nil, err
		}
	}

	for _, u := range m.Uniques() {
		err := add(source.NewFunction(GetByName(m, u),
			fmt.Sprintf("db.query(%s).filter(%s.%s == %s).first()", class, class, u.Name, u.Name),
			source.WithArguments(db(), source.Attr(u.Name, u.Datatype)),
		))
		if err != nil {
			return nil, err
		}
	}

	err := add(source.NewFunction(ListName(m),
		fmt.Sprintf("db.query(%s).offset(skip).limit(limit).all()", class),
		source.WithArguments(db(),
			source.Attr("skip", "int").WithDefault("0"),
			source.Attr("limit", "int").WithDefault("100"),
		),
	))
	if err != nil {
		return nil, err
	}

	if err = add(createFunction(m, class, opts)); err != nil {
		return nil, err
	}
	return out, nil
}

func createFunction(m *model.Model, class string, opts Options) (*source.Function, error) {
	n := m.SnakeName()
	local := "db_" + n
	args := []source.Attribute{
		db(),
		source.Attr(n, "schemas."+naming.ClassName(m.Name)+"Create"),
	}

	dump := "dict"
	if opts.PydanticV2 {
		dump = "model_dump"
	}
	excluded := make([]string, 0)
	for _, f := range m.Fields {
		if f.Transient {
			excluded = append(excluded, fmt.Sprintf("%q", f.Name))
		}
	}
	ctor := "**" + n + "." + dump + "()"
	if len(excluded) > 0 {
		ctor = "**" + n + "." + dump + "(exclude={" + strings.Join(excluded, ", ") + "})"
	}
	for _, fk := range m.ForeignKeyArgs() {
		args = append(args, source.Attr(fk.Name, fk.Datatype))
		ctor += ", " + fk.Name + "=" + fk.Name
	}

	body := strings.Join([]string{
		fmt.Sprintf("%s = %s(%s)", local, class, ctor),
		fmt.Sprintf("db.add(%s)", local),
		"db.commit()",
		fmt.Sprintf("db.refresh(%s)", local),
	}, "\n")

	return source.NewFunction(CreateName(m), local,
		source.WithArguments(args...),
		source.WithBody(body),
	)
}

// CrudPage renders crud.py for all models.
func CrudPage(models []*model.Model, opts Options) (string, error) {
	blocks := make([]string, 0, len(models)*4)
	for _, m := range models {
		fns, err := Functions(m, opts)
		if err != nil {
			return "", err
		}
		for _, f := range fns {
			blocks = append(blocks, source.RenderFunction(f))
		}
	}
	return source.RenderModule(pageHeader, blocks...), nil
}
