// ABOUTME: install-skill command that hands agents a playbook for the clinic MCP tools
// ABOUTME: The skill name and summary come from the embedded SKILL.md front matter

package commands

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillBanner = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2)

// skillMeta is the YAML front matter at the top of SKILL.md
type skillMeta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parseSkill splits the front matter from a skill file
func parseSkill(content []byte) (skillMeta, error) {
	var meta skillMeta
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return meta, errors.New("skill file has no front matter")
	}
	front, _, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return meta, errors.New("skill front matter is not closed")
	}
	if err := yaml.Unmarshal(front, &meta); err != nil {
		return meta, fmt.Errorf("parsing skill front matter: %w", err)
	}
	if meta.Name == "" {
		return meta, errors.New("skill front matter has no name")
	}
	return meta, nil
}

// NewInstallSkillCmd creates the install-skill command
func NewInstallSkillCmd() *cobra.Command {
	var (
		skipConfirm bool
		printOnly   bool
		skillsDir   string
	)

	cmd := &cobra.Command{
		Use:   "install-skill",
		Short: "Install Claude Code skill",
		Long: `Install the clinic skill for Claude Code.

The skill teaches an agent the order of the clinic MCP tools: question the
agent, diagnose, prescribe, then read the feedback. It is written to
<dir>/clinic/SKILL.md, where <dir> defaults to ~/.claude/skills.

Examples:
  clinic install-skill
  clinic install-skill --yes --dir ./.claude/skills
  clinic install-skill --print > SKILL.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := skillFS.ReadFile("skill/SKILL.md")
			if err != nil {
				return fmt.Errorf("failed to read embedded skill: %w", err)
			}
			if printOnly {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}
			return installSkill(cmd, content, skillsDir, skipConfirm)
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Write the skill to stdout instead of installing it")
	cmd.Flags().StringVar(&skillsDir, "dir", "", "Skills directory (default ~/.claude/skills)")
	return cmd
}

func installSkill(cmd *cobra.Command, content []byte, skillsDir string, skipConfirm bool) error {
	meta, err := parseSkill(content)
	if err != nil {
		return err
	}

	if skillsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		skillsDir = filepath.Join(home, ".claude", "skills")
	}
	target := filepath.Join(skillsDir, meta.Name, "SKILL.md")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, skillBanner.Render("Skill: "+meta.Name))
	fmt.Fprintf(out, "\n%s\n\nTarget: %s\n", meta.Description, target)

	existing, err := os.ReadFile(target)
	switch {
	case err == nil && bytes.Equal(existing, content):
		fmt.Fprintln(out, "\n✓ Skill is already up to date.")
		return nil
	case err == nil:
		fmt.Fprintln(out, "An older copy is installed and will be replaced.")
	}

	if !skipConfirm {
		ok, err := confirm(cmd.InOrStdin(), out, "\nInstall? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Installation cancelled.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Installed %s skill.\n", meta.Name)
	if !quiet {
		fmt.Fprintln(out, "Register `clinic mcp` as an MCP server, then ask Claude to play clinic case c1.")
	}
	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
