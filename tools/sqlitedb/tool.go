package sqlitedb

import (
	"context"
	"fmt"

	"github.com/roteiro-agents/roteiro/tools"
)

// Tools returns the four database tools bound to store, in the order the
// demo registers them.
func Tools(store *Store) []tools.Tool {
	return []tools.Tool{
		NewListTables(store),
		NewDescribeTable(store),
		NewReadQuery(store),
		NewWriteQuery(store),
	}
}

// ListTablesTool lists the user tables of the database.
type ListTablesTool struct {
	tools.Config
	store *Store
}

func NewListTables(store *Store, opts ...tools.Option) *ListTablesTool {
	ret := &ListTablesTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("list_tables")
	}
	if ret.Description() == "" {
		ret.SetDescription("Lista as tabelas da base de dados.")
	}
	return ret
}

func (t *ListTablesTool) Schema() map[string]any {
	return tools.ObjectSchema(nil, map[string]any{})
}

func (t *ListTablesTool) Invoke(ctx context.Context, _ map[string]any) (any, error) {
	return t.store.ListTables(ctx)
}

// DescribeTableTool returns the column definitions of one table.
type DescribeTableTool struct {
	tools.Config
	store *Store
}

func NewDescribeTable(store *Store, opts ...tools.Option) *DescribeTableTool {
	ret := &DescribeTableTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("describe_table")
	}
	if ret.Description() == "" {
		ret.SetDescription("Descreve as colunas de uma tabela.")
	}
	return ret
}

func (t *DescribeTableTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"table_name"}, map[string]any{
		"table_name": tools.StringProperty("Nome da tabela a descrever."),
	})
}

func (t *DescribeTableTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	table, ok := args["table_name"].(string)
	if !ok || table == "" {
		return nil, fmt.Errorf("missing table_name argument")
	}
	return t.store.DescribeTable(ctx, table)
}

// ReadQueryTool runs a SELECT statement.
type ReadQueryTool struct {
	tools.Config
	store *Store
}

func NewReadQuery(store *Store, opts ...tools.Option) *ReadQueryTool {
	ret := &ReadQueryTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("read_query")
	}
	if ret.Description() == "" {
		ret.SetDescription("Executa uma consulta SELECT na base de dados.")
	}
	return ret
}

func (t *ReadQueryTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"query"}, map[string]any{
		"query": tools.StringProperty("Consulta SELECT a executar."),
	})
}

func (t *ReadQueryTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("missing query argument")
	}
	return t.store.ReadQuery(ctx, query)
}

// WriteQueryTool runs an INSERT, UPDATE or DELETE statement.
type WriteQueryTool struct {
	tools.Config
	store *Store
}

func NewWriteQuery(store *Store, opts ...tools.Option) *WriteQueryTool {
	ret := &WriteQueryTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Name() == "" {
		ret.SetName("write_query")
	}
	if ret.Description() == "" {
		ret.SetDescription("Executa um INSERT, UPDATE ou DELETE na base de dados.")
	}
	return ret
}

func (t *WriteQueryTool) Schema() map[string]any {
	return tools.ObjectSchema([]string{"query"}, map[string]any{
		"query": tools.StringProperty("Instrução INSERT, UPDATE ou DELETE a executar."),
	})
}

func (t *WriteQueryTool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("missing query argument")
	}
	affected, err := t.store.WriteQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return map[string]any{"affected_rows": affected}, nil
}
