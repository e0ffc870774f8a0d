package dialect_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nrfta/keyset-go"
	"github.com/nrfta/keyset-go/dialect"
	"github.com/nrfta/keyset-go/token"
)

// sqlQuery is a minimal paging.Query backed directly by database/sql,
// grounding the Postgres dialect against a real server rather than the
// in-memory fakeQuery the unit suite uses — the predicate/order/limit
// SQL the dialect emits only has to be correct against a real planner
// once, here, rather than in every package that imports it.
type sqlQuery struct {
	db      *sql.DB
	table   string
	orderBy []string
	where   []paging.Predicate
	limit   int
}

func (q sqlQuery) OrderBy(column string, desc bool, nulls paging.NullsPlacement) paging.Query {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	clause := column + " " + dir
	switch nulls {
	case paging.NullsFirst:
		clause += " NULLS FIRST"
	case paging.NullsLast:
		clause += " NULLS LAST"
	}
	q.orderBy = append(append([]string{}, q.orderBy...), clause)
	return q
}

func (q sqlQuery) Limit(n int) paging.Query { q.limit = n; return q }
func (q sqlQuery) Top(n int) paging.Query   { return q.Limit(n) }
func (q sqlQuery) Offset(int) paging.Query  { return q }

func (q sqlQuery) Where(pred paging.Predicate) paging.Query {
	q.where = append(append([]paging.Predicate{}, q.where...), pred)
	return q
}

func (q sqlQuery) Execute(ctx context.Context) ([]paging.Row, error) {
	stmt := "SELECT id, name, created_at FROM " + q.table
	var args []interface{}
	for _, pred := range q.where {
		clause, _ := renderPredicate(pred, &args)
		stmt += " WHERE " + clause
	}
	if len(q.orderBy) > 0 {
		stmt += " ORDER BY "
		for i, o := range q.orderBy {
			if i > 0 {
				stmt += ", "
			}
			stmt += o
		}
	}
	if q.limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", q.limit)
	}

	rows, err := q.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []paging.Row
	for rows.Next() {
		var id int
		var name string
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, paging.Row{"id": id, "name": name, "created_at": createdAt})
	}
	return out, rows.Err()
}

// renderPredicate renders a predicate using Postgres "$n" placeholders,
// appending to args and returning the bound clause.
func renderPredicate(p paging.Predicate, args *[]interface{}) (string, []interface{}) {
	switch p.Kind {
	case paging.PredAnd, paging.PredOr:
		sep := " AND "
		if p.Kind == paging.PredOr {
			sep = " OR "
		}
		clause := "("
		for i, c := range p.Children {
			if i > 0 {
				clause += sep
			}
			sub, _ := renderPredicate(c, args)
			clause += sub
		}
		return clause + ")", *args
	case paging.PredCmp:
		*args = append(*args, p.Value.Raw())
		return fmt.Sprintf("%s %s $%d", p.Column, p.Op, len(*args)), *args
	case paging.PredIsNull:
		return p.Column + " IS NULL", *args
	case paging.PredIsNotNull:
		return p.Column + " IS NOT NULL", *args
	default:
		return "TRUE", *args
	}
}

var _ = Describe("Postgres dialect against a live database", func() {
	var (
		container *postgres.PostgresContainer
		db        *sql.DB
	)

	BeforeEach(func() {
		ctx := context.Background()

		c, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			),
		)
		Expect(err).ToNot(HaveOccurred())
		container = c

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).ToNot(HaveOccurred())

		db, err = sql.Open("postgres", connStr)
		Expect(err).ToNot(HaveOccurred())

		_, err = db.ExecContext(ctx, `
			CREATE TABLE widgets (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT NOW()
			);
		`)
		Expect(err).ToNot(HaveOccurred())

		for i := 1; i <= 5; i++ {
			_, err = db.ExecContext(ctx, `INSERT INTO widgets (name) VALUES ($1)`, fmt.Sprintf("w%d", i))
			Expect(err).ToNot(HaveOccurred())
		}
	})

	AfterEach(func() {
		ctx := context.Background()
		if db != nil {
			db.Close()
		}
		if container != nil {
			Expect(container.Terminate(ctx)).To(Succeed())
		}
	})

	It("paginates across two pages using the keyset predicate this package builds", func() {
		ctx := context.Background()
		paginator := paging.NewPaginator(dialect.Postgres{}, token.Default())
		sorts := paging.SortSet{{Column: "id", Direction: paging.Asc}}
		query := sqlQuery{db: db, table: "widgets"}

		page1, err := paginator.Paginate(ctx, paging.PaginateRequest{Query: query, Sorts: sorts, Limit: 3})
		Expect(err).ToNot(HaveOccurred())
		Expect(page1.Items).To(HaveLen(3))
		Expect(page1.PageInfo.HasNextPage).To(BeTrue())
		Expect(page1.PageInfo.NextPage).ToNot(BeNil())

		page2, err := paginator.Paginate(ctx, paging.PaginateRequest{
			Query:  query,
			Sorts:  sorts,
			Limit:  3,
			Cursor: &paging.IncomingCursor{NextPage: page1.PageInfo.NextPage},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(page2.Items).To(HaveLen(2))
		Expect(page2.PageInfo.HasNextPage).To(BeFalse())
	})
})
