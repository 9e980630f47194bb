package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localstore/localstore/internal/storage"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Run the demo workflow against a spawned server",
	Long: `example spawns "localstore serve" as a subprocess, connects to it as an
MCP client over stdio, and runs the demonstration workflow: write three
config files via the write_file tool, read them back as resources, then
write and read a summary file.`,
	RunE: runExample,
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

func runExample(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "localstore-example",
		Version: AppVersion,
	}, nil)

	serverCmd := exec.Command(self, "serve",
		"--path", cfg.Path,
		"--log-level", cfg.LogLevel)
	serverCmd.Stderr = os.Stderr

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: serverCmd}, nil)
	if err != nil {
		return fmt.Errorf("connecting to server: %w", err)
	}
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		return fmt.Errorf("listing tools: %w", err)
	}
	fmt.Println("Available tools:")
	for _, tool := range tools.Tools {
		fmt.Printf("  %s - %s\n", tool.Name, tool.Description)
	}

	const configCount = 3
	for i := 1; i <= configCount; i++ {
		path := fmt.Sprintf("config%d.txt", i)
		if err := writeFile(ctx, session, path, fmt.Sprintf("%d", i)); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	for i := 1; i <= configCount; i++ {
		uri := fmt.Sprintf("%sconfig%d.txt", storage.Scheme, i)
		content, err := readResource(ctx, session, uri)
		if err != nil {
			return err
		}
		fmt.Printf("Read %s: %q\n", uri, content)
	}

	if err := writeFile(ctx, session, "summary.txt", fmt.Sprintf("%d", configCount)); err != nil {
		return err
	}

	summary, err := readResource(ctx, session, storage.Scheme+"summary.txt")
	if err != nil {
		return err
	}
	fmt.Printf("Summary: %s config files created\n", summary)

	return nil
}

// writeFile invokes the write_file tool and fails on an error result.
func writeFile(ctx context.Context, session *mcp.ClientSession, path, content string) error {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "write_file",
		Arguments: map[string]any{
			"path":    path,
			"content": content,
		},
	})
	if err != nil {
		return fmt.Errorf("write_file %s: %w", path, err)
	}
	if result.IsError {
		return fmt.Errorf("write_file %s: %s", path, contentText(result.Content))
	}
	return nil
}

// readResource reads a resource and returns its text content.
func readResource(ctx context.Context, session *mcp.ClientSession, uri string) (string, error) {
	result, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		return "", fmt.Errorf("read %s: %w", uri, err)
	}
	if len(result.Contents) == 0 {
		return "", fmt.Errorf("read %s: empty result", uri)
	}
	return result.Contents[0].Text, nil
}

func contentText(contents []mcp.Content) string {
	out := ""
	for _, c := range contents {
		if text, ok := c.(*mcp.TextContent); ok {
			out += text.Text
		}
	}
	return out
}
