package wordsource

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQuery reads the words of a scope from a BigQuery table holding
// `word_key` and `scope` columns.
type BigQuery struct {
	Project  string
	Table    string
	Location string
}

// Query returns the SQL used to select the words of a scope. The scope
// itself is passed as the @scope parameter.
func (b BigQuery) Query() string {
	return fmt.Sprintf("SELECT word_key FROM `%s` WHERE scope = @scope", b.Table)
}

// Words returns every word in scope.
func (b BigQuery) Words(ctx context.Context, scope string) ([]string, error) {
	client, err := bigquery.NewClient(ctx, b.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(b.Query())
	q.Location = b.Location
	q.Parameters = []bigquery.QueryParameter{
		{Name: "scope", Value: scope},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}
