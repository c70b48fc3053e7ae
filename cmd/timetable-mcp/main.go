package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/amritadottown/timetable-registry/internal/config"
	"github.com/amritadottown/timetable-registry/internal/logging"
	"github.com/amritadottown/timetable-registry/internal/pipeline"
	"github.com/amritadottown/timetable-registry/internal/timetable"
)

const (
	serverName    = "timetable-registry"
	serverVersion = "0.1.0"
)

const (
	argPath = "path"
	argPage = "page"
)

type tools struct {
	processor *pipeline.ProcessingService
}

func main() {
	cfg, err := config.Load()
	must(err)
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	must(err)
	defer log.Sync()
	tables, err := config.LoadTables(cfg.TablesFile)
	must(err)

	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, &tools{processor: pipeline.NewProcessingService(cfg, timetable.NewParser(tables), log)})
	must(server.ServeStdio(s))
}

func registerTools(s *server.MCPServer, t *tools) {
	s.AddTool(
		mcp.NewTool("parse_timetable",
			mcp.WithDescription("Parse a timetable PDF, XLSX, HTML or .eml file and return one registry record per section found. "+
				"Nothing is written to disk; each entry carries the path the record would be written to."),
			mcp.WithString(argPath,
				mcp.Required(),
				mcp.Description("Absolute path of the timetable document"),
			),
			mcp.WithNumber(argPage,
				mcp.Description("Parse only this 1-indexed page or sheet"),
			),
		),
		t.parseTimetable,
	)

	s.AddTool(
		mcp.NewTool("list_departments",
			mcp.WithDescription("Return the department code to registry directory mapping."),
		),
		t.listDepartments,
	)
}

type parsedEntry struct {
	Path   string                 `json:"path"`
	Record timetable.OutputRecord `json:"record"`
}

func (t *tools) parseTimetable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := req.Params.Arguments[argPath].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError(argPath + " is required"), nil
	}
	page := 0
	if v, ok := req.Params.Arguments[argPage].(float64); ok {
		page = int(v)
	}

	res, err := t.processor.ProcessFile(ctx, path, pipeline.ProcessOptions{Page: page, DryRun: true})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := make([]parsedEntry, 0, len(res.Timetables))
	for _, pt := range res.Timetables {
		entries = append(entries, parsedEntry{Path: pt.Path, Record: pt.Record})
	}
	blob, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(blob)), nil
}

func (t *tools) listDepartments(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blob, err := json.MarshalIndent(t.processor.Parser().Tables().Departments, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(blob)), nil
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
