package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/botbee/botbee-backend/internal/config"
	"github.com/botbee/botbee-backend/internal/entity"
)

const (
	retrievalToolName = "getInformation"

	roleUser  = "user"
	roleModel = "model"
)

// Connector streams chat completions from Gemini with the retrieval tool
// attached. Tool execution is delegated to the caller through callbacks so
// the connector stays free of storage concerns.
type Connector struct {
	geminiCfg config.GeminiConfig
	chatCfg   config.ChatConfig
	client    *genai.Client
	logger    *zap.Logger
}

func NewConnector(
	geminiCfg config.GeminiConfig,
	chatCfg config.ChatConfig,
	client *genai.Client,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		geminiCfg: geminiCfg,
		chatCfg:   chatCfg,
		client:    client,
		logger:    logger,
	}
}

// StreamChat runs one answering turn. The last message in params.Messages is
// sent as the new user turn; everything before it becomes chat history. When
// the model requests the retrieval tool, OnTool is invoked and its result is
// sent back, up to the configured step ceiling.
func (c *Connector) StreamChat(
	ctx context.Context,
	params entity.StreamParams,
	callbacks entity.StreamCallbacks,
) error {
	if len(params.Messages) == 0 {
		return fmt.Errorf("%w: no messages to answer", entity.ErrProviderStream)
	}

	model := c.client.GenerativeModel(c.geminiCfg.ChatModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(params.SystemPrompt)},
	}
	model.Tools = []*genai.Tool{retrievalTool()}

	session := model.StartChat()
	session.History = toHistory(params.Messages[:len(params.Messages)-1])

	parts := []genai.Part{genai.Text(params.Messages[len(params.Messages)-1].Content)}

	for step := 0; step < c.chatCfg.MaxToolSteps; step++ {
		calls, err := c.streamTurn(ctx, session, parts, callbacks)
		if err != nil {
			return err
		}
		if len(calls) == 0 {
			return nil
		}

		parts, err = c.executeTools(ctx, params.BotID, calls, callbacks)
		if err != nil {
			return err
		}
	}

	ctxzap.Warn(ctx, "tool step ceiling reached",
		zap.Int("max_steps", c.chatCfg.MaxToolSteps),
	)
	return nil
}

// streamTurn sends one message to the session and forwards text fragments to
// OnDelta. Any function calls the model emitted during the turn are returned
// for execution.
func (c *Connector) streamTurn(
	ctx context.Context,
	session *genai.ChatSession,
	parts []genai.Part,
	callbacks entity.StreamCallbacks,
) ([]genai.FunctionCall, error) {
	iter := session.SendMessageStream(ctx, parts...)

	var calls []genai.FunctionCall
	for {
		res, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			ctxzap.Error(ctx, "model stream failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %s", entity.ErrProviderStream, err)
		}

		for _, cand := range res.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				switch p := part.(type) {
				case genai.Text:
					if string(p) == "" {
						continue
					}
					if err := callbacks.OnDelta(string(p)); err != nil {
						return nil, err
					}
				case genai.FunctionCall:
					calls = append(calls, p)
				}
			}
		}
	}

	return calls, nil
}

// executeTools runs each requested retrieval call and packs the results into
// function responses for the next turn.
func (c *Connector) executeTools(
	ctx context.Context,
	botID string,
	calls []genai.FunctionCall,
	callbacks entity.StreamCallbacks,
) ([]genai.Part, error) {
	responses := make([]genai.Part, 0, len(calls))
	for _, call := range calls {
		if call.Name != retrievalToolName {
			ctxzap.Warn(ctx, "model requested unknown tool", zap.String("tool", call.Name))
			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"error": "unknown tool"},
			})
			continue
		}

		question := stringArg(call.Args, "question")
		result, err := callbacks.OnTool(entity.ToolCall{
			Name:     call.Name,
			Question: question,
			BotID:    botID,
		})
		if err != nil {
			return nil, err
		}

		responses = append(responses, genai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"information": result},
		})
	}
	return responses, nil
}

func retrievalTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        retrievalToolName,
				Description: "Get information from the bot's knowledge base to answer the user's question.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {
							Type:        genai.TypeString,
							Description: "The user's question to look up.",
						},
					},
					Required: []string{"question"},
				},
			},
		},
	}
}

func toHistory(messages []entity.ChatMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := roleUser
		if msg.Role == roleModel || msg.Role == "assistant" {
			role = roleModel
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		switch s := v.(type) {
		case string:
			return s
		default:
			raw, _ := json.Marshal(s)
			return string(raw)
		}
	}
	return ""
}
