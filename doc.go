/*
Package docbot provides the Prefect documentation tools used by a
conversational assistant.

The Toolkit exposes four tools:

  - search_prefect_2x_docs and search_prefect_3x_docs query a vector store
    holding the versioned documentation
  - get_info answers questions about known topics, currently the latest
    Prefect release
  - get_prefect_code_example picks the published code example closest to a
    request and returns it with its link

# Basic Usage

	backend, err := turbopuffer.New(turbopuffer.Config{Embedder: embedder})
	if err != nil {
		return err
	}

	kit, err := docbot.New(
		docbot.WithBackend(backend),
		docbot.WithSecretSource(secret.Env{Prefix: "DOCBOT_"}),
		docbot.WithClassifier(openai.New(openai.GPT4oMini())),
	)
	if err != nil {
		return err
	}

	text, err := kit.SearchPrefect3xDocs(ctx, []string{"work pools", "deployment triggers"})

The definitions returned by Tools can be served over the Model Context
Protocol with package mcpserver, or invoked directly with
tool.Definition.Call.

The vector store credential is fetched the first time a search runs and
then reused for the life of the process.
*/
package docbot
