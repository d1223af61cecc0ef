package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"tasktracker/internal/client"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	baseURL := os.Getenv("TASKTRACKER_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := client.New(baseURL)
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "create-user":
		err = runCreateUser(ctx, c, os.Args[2:])
	case "list-users":
		err = runListUsers(ctx, c)
	case "create-task":
		err = runCreateTask(ctx, c, os.Args[2:])
	case "update-task":
		err = runUpdateTask(ctx, c, os.Args[2:])
	case "list-tasks":
		err = runListTasks(ctx, c)
	case "save-tasks":
		err = runSaveTasks(ctx, c, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: taskctl COMMAND [ARGS]

Commands:
  create-user NAME EMAIL                 Create a new user
  list-users                             List all users
  create-task TITLE DESCRIPTION USER_ID  Create a new task
  update-task TASK_ID STATUS_CODE        Update a task's status (0: pendent, 1: on going, 2: completed)
  list-tasks                             List all tasks
  save-tasks [--filename F]              Save all tasks to a JSON file (default: tasks.json)

The server address is taken from TASKTRACKER_URL (default `+defaultBaseURL+`).
`)
}

func runCreateUser(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskctl create-user NAME EMAIL")
	}
	user, err := c.CreateUser(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printHeader("User created")
	fmt.Printf("Name: %s\n", user.Name)
	fmt.Printf("Email: %s\n", user.Email)
	printFooter()
	return nil
}

func runListUsers(ctx context.Context, c *client.Client) error {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return err
	}
	printHeader("Users")
	for _, u := range users {
		fmt.Println("-------------------------------------")
		fmt.Printf("Id: %d\n", u.ID)
		fmt.Printf("Name: %s\n", u.Name)
		fmt.Printf("Email: %s\n", u.Email)
	}
	printFooter()
	return nil
}

func runCreateTask(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: taskctl create-task TITLE DESCRIPTION USER_ID")
	}
	userID, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid USER_ID %q", args[2])
	}
	task, err := c.CreateTask(ctx, args[0], args[1], uint(userID))
	if err != nil {
		return err
	}
	printHeader("Task created")
	printTask(task)
	printFooter()
	return nil
}

func runUpdateTask(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskctl update-task TASK_ID STATUS_CODE")
	}
	taskID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid TASK_ID %q", args[0])
	}
	statusCode, err := strconv.Atoi(args[1])
	if err != nil || statusCode < 0 || statusCode > 2 {
		return fmt.Errorf("invalid status code: use 0 (pendent), 1 (on going), or 2 (completed)")
	}
	task, err := c.UpdateTaskStatus(ctx, uint(taskID), statusCode)
	if err != nil {
		return err
	}
	printHeader("Task updated")
	printTask(task)
	printFooter()
	return nil
}

func runListTasks(ctx context.Context, c *client.Client) error {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return err
	}
	printHeader("Tasks")
	for i := range tasks {
		fmt.Println("-------------------------------------")
		printTask(&tasks[i])
	}
	printFooter()
	return nil
}

func runSaveTasks(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("save-tasks", flag.ContinueOnError)
	filename := fs.String("filename", "tasks.json", "output file name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.WriteFile(*filename, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *filename, err)
	}
	fmt.Printf("Tasks saved to %s\n", *filename)
	return nil
}

func printTask(t *client.Task) {
	fmt.Printf("Id: %d\n", t.ID)
	fmt.Printf("Title: %s\n", t.Title)
	fmt.Printf("Description: %s\n", t.Description)
	fmt.Printf("Status: %s\n", t.Status)
	fmt.Println("User:")
	fmt.Printf("  Id: %d\n", t.User.ID)
	fmt.Printf("  Name: %s\n", t.User.Name)
	fmt.Printf("  Email: %s\n", t.User.Email)
}

func printHeader(header string) {
	fmt.Printf("\n=============== %s ===============\n", header)
}

func printFooter() {
	fmt.Println("=====================================")
}
