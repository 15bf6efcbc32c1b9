package router

import (
	"fmt"
	"strings"

	"github.com/cmmoran/pyscaffold/internal/crud"
	"github.com/cmmoran/pyscaffold/internal/model"
	"github.com/cmmoran/pyscaffold/internal/naming"
	"github.com/cmmoran/pyscaffold/pkg/source"
)

const pageHeader = `from typing import List

from fastapi import Depends, FastAPI, HTTPException
from sqlalchemy.orm import Session

from . import crud, models, schemas
from .database import SessionLocal, engine

models.Base.metadata.create_all(bind=engine)

app = FastAPI()
`

// GetDB is the request-scoped session dependency every endpoint takes.
func GetDB() *source.Function {
	return source.MustFunction("get_db", "",
		source.WithBody("db = SessionLocal()\ntry:\n    yield db\nfinally:\n    db.close()"),
	)
}

func dbDependency() source.Attribute {
	return source.Attr("db", "Session").WithDefault("Depends(get_db)")
}

// Endpoints returns the create, list and read endpoints for m.
func Endpoints(m *model.Model) ([]*source.Function, error) {
	var (
		n      = m.SnakeName()
		class  = "schemas." + naming.ClassName(m.Name)
		plural = naming.Plural(m.Name, m.Plural)
		out    = make([]*source.Function, 0, 3)
	)

	create, err := createEndpoint(m, n, class, plural)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}
	out = append(out, create)

	list, err := source.NewFunction("read_"+plural,
		fmt.Sprintf("%s(db, skip=skip, limit=limit)", "crud."+crud.ListName(m)),
		source.WithDecorator(fmt.Sprintf(`@app.get("/%s/", response_model=List[%s])`, plural, class)),
		source.WithArguments(
			source.Attr("skip", "int").WithDefault("0"),
			source.Attr("limit", "int").WithDefault("100"),
			dbDependency(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}
	out = append(out, list)

	if pk := m.PrimaryKey(); pk != nil {
		id := crud.IDArg(m)
		local := "db_" + n
		read, err := source.NewFunction("read_"+n, local,
			source.WithDecorator(fmt.Sprintf(`@app.get("/%s/{%s}", response_model=%s)`, plural, id, class)),
			source.WithArguments(source.Attr(id, pk.Datatype), dbDependency()),
			source.WithBody(strings.Join([]string{
				fmt.Sprintf("%s = crud.%s(db, %s=%s)", local, crud.GetName(m), id, id),
				fmt.Sprintf("if %s is None:", local),
				fmt.Sprintf(`    raise HTTPException(status_code=404, detail="%s not found")`, naming.ClassName(m.Name)),
			}, "\n")),
		)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", m.Name, err)
		}
		out = append(out, read)
	}
	return out, nil
}

func createEndpoint(m *model.Model, n, class, plural string) (*source.Function, error) {
	args := []source.Attribute{source.Attr(n, class+"Create")}
	call := []string{"db=db", n + "=" + n}
	for _, fk := range m.ForeignKeyArgs() {
		args = append(args, source.Attr(fk.Name, fk.Datatype))
		call = append(call, fk.Name+"="+fk.Name)
	}
	args = append(args, dbDependency())

	opts := []source.FunctionOption{
		source.WithDecorator(fmt.Sprintf(`@app.post("/%s/", response_model=%s)`, plural, class)),
		source.WithArguments(args...),
	}
	if u := firstCreateUnique(m); u != nil {
		local := "db_" + n
		opts = append(opts, source.WithBody(strings.Join([]string{
			fmt.Sprintf("%s = crud.%s(db, %s=%s.%s)", local, crud.GetByName(m, u), u.Name, n, u.Name),
			fmt.Sprintf("if %s:", local),
			fmt.Sprintf(`    raise HTTPException(status_code=400, detail="%s already registered")`, naming.Humanize(u.Name)),
		}, "\n")))
	}

	return source.NewFunction("create_"+n,
		fmt.Sprintf("crud.%s(%s)", crud.CreateName(m), strings.Join(call, ", ")),
		opts...,
	)
}

// firstCreateUnique returns the first unique field the create schema
// carries, the one a duplicate check can read from the request.
func firstCreateUnique(m *model.Model) *model.Field {
	for _, u := range m.Uniques() {
		if u.InCreateSchema() {
			return u
		}
	}
	return nil
}

// MainPage renders main.py: app bootstrap, the session dependency and every
// model's endpoints.
func MainPage(models []*model.Model) (string, error) {
	blocks := []string{source.RenderFunction(GetDB())}
	for _, m := range models {
		fns, err := Endpoints(m)
		if err != nil {
			return "", err
		}
		for _, f := range fns {
			blocks = append(blocks, source.RenderFunction(f))
		}
	}
	return source.RenderModule(pageHeader, blocks...), nil
}
