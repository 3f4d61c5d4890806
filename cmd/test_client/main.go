package main

import (
	"context"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// Demo catalog identities, see internal/storage/memory/seed.go
	testJobID   = "job-003"
	testAdminID = "usr-root"
)

var (
	admin = map[string]any{"id": testAdminID, "name": "Root", "role": "company-admin"}
	scout = map[string]any{"id": "usr-alice", "name": "Alice Moreau", "role": "talent-scout"}
)

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_URL")
	if endpoint == "" {
		endpoint = "http://localhost:8080/mcp/stream"
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "recruit-ops-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testRoles(ctx, session)
	testListJobs(ctx, session)
	testAssignment(ctx, session)
	testCandidates(ctx, session)
	testMetrics(ctx, session)

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s - %s\n", tool.Name, tool.Description)
	}
}

func testRoles(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: recruitops://roles")

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "recruitops://roles"})
	if err != nil {
		log.Printf("read roles failed: %v", err)
		return
	}
	for _, c := range res.Contents {
		fmt.Println(c.Text)
	}
}

func testListJobs(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list_jobs")

	call(ctx, session, "list_jobs", map[string]any{"caller": admin})
	call(ctx, session, "list_jobs", map[string]any{"caller": scout})
	call(ctx, session, "list_jobs", map[string]any{
		"caller":     admin,
		"text":       "engineer",
		"assignment": "assigned",
	})
}

func testAssignment(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: assign_job / unassign_job")

	call(ctx, session, "assign_job", map[string]any{
		"caller":        admin,
		"job_id":        testJobID,
		"assignee_id":   "usr-alice",
		"assignee_name": "Alice Moreau",
	})
	call(ctx, session, "get_job", map[string]any{"caller": scout, "job_id": testJobID})
	call(ctx, session, "unassign_job", map[string]any{"caller": scout, "job_id": testJobID})

	// out of scope now, expected to fail
	call(ctx, session, "get_job", map[string]any{"caller": scout, "job_id": testJobID})
}

func testCandidates(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: job_candidates")

	call(ctx, session, "job_candidates", map[string]any{"caller": admin, "job_id": "job-001"})
}

func testMetrics(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: metrics")

	call(ctx, session, "metrics_aggregate", map[string]any{"granularity": "monthly"})
	call(ctx, session, "metrics_summary", map[string]any{"family": "recruitment", "granularity": "weekly"})
	call(ctx, session, "metrics_summary", map[string]any{"family": "financial", "granularity": "monthly"})
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		fmt.Printf("  %s returned a tool error:\n", name)
	}
	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
