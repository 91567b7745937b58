/*
Package tool turns plain Go functions into tools a language model can call.

A Definition carries the tool name, the guidance shown to the model, the
argument names and the function. The JSON schema for the arguments is
reflected from the function signature; a leading context.Context is filled
in by the caller and never appears in the schema.

	search := tool.Must(
		toolkit.SearchPrefect3xDocs,
		tool.Name("search_prefect_3x_docs"),
		tool.Description("Searches the Prefect 3.x documentation."),
		tool.Parameters("queries"),
	)

	name, schema := search.ToNameAndSchema()
	out, err := search.Call(ctx, []byte(`{"queries":["work pools"]}`))

Functions may return (T) or (T, error). String results pass through
unchanged; other results are encoded as JSON.
*/
package tool
