package docbot

import (
	"github.com/casualjim/docbot/tool"
)

// Tool names as the model sees them.
const (
	ToolSearchPrefect2xDocs   = "search_prefect_2x_docs"
	ToolSearchPrefect3xDocs   = "search_prefect_3x_docs"
	ToolGetInfo               = "get_info"
	ToolGetPrefectCodeExample = "get_prefect_code_example"
)

const searchPrefect2xDocsDescription = `Searches the Prefect 2.x documentation for the given queries.

It is best to use more than one, short query to get the best results.

For example, given a question like:
"Is there a way to get the task_run_id for a task from a flow run?"

You might use the following queries:
- "retrieve task run id from flow run"
- "retrieve run metadata dynamically"`

const searchPrefect3xDocsDescription = `Searches the Prefect 3.x documentation for the given queries.

It is best to use more than one, short query to get the best results.

For example, given a question like:
"Is there a way to get the task_run_id for a task from a flow run?"

You might use the following queries:
- "retrieve task run id from flow run"`

const getInfoDescription = `Returns information about a topic using one of many pre-existing helper functions.
You need only provide the topic name, and the appropriate function will return information.

As of now, the only topic is "latest_prefect_version".`

const getPrefectCodeExampleDescription = `Gets a Prefect code example related to the given text.
Returns a link to the example followed by its source.`

// Tools returns the tool definitions backed by t, in a stable order.
func (t *Toolkit) Tools() []tool.Definition {
	return []tool.Definition{
		tool.Must(t.SearchPrefect2xDocs,
			tool.Name(ToolSearchPrefect2xDocs),
			tool.Description(searchPrefect2xDocsDescription),
			tool.Parameters("queries"),
		),
		tool.Must(t.SearchPrefect3xDocs,
			tool.Name(ToolSearchPrefect3xDocs),
			tool.Description(searchPrefect3xDocsDescription),
			tool.Parameters("queries"),
		),
		tool.Must(t.GetInfo,
			tool.Name(ToolGetInfo),
			tool.Description(getInfoDescription),
			tool.Parameters("topic"),
		),
		tool.Must(t.GetPrefectCodeExample,
			tool.Name(ToolGetPrefectCodeExample),
			tool.Description(getPrefectCodeExampleDescription),
			tool.Parameters("related_to"),
		),
	}
}
