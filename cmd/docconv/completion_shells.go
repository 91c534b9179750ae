package main

import (
	"fmt"
	"io"
	"strings"
)

const programName = "docconv"

// commandNames returns the names of all commands, space separated.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns every spelling of the flags, space separated.
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// globs splits a comma-separated glob list.
func globs(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, ",")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# bash completion for %s\n\n", programName)
	fmt.Fprintf(&b, "_%s_completions() {\n", programName)
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valueCases []string
		for _, f := range c.Flags {
			var reply string
			switch f.Type {
			case flagEnum:
				reply = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"${cur}\"))", strings.Join(f.Values, " "))
			case flagDir:
				reply = "COMPREPLY=($(compgen -d -- \"${cur}\"))"
			case flagFile:
				reply = "COMPREPLY=($(compgen -f -- \"${cur}\"))"
			default:
				continue
			}
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			valueCases = append(valueCases, fmt.Sprintf("        %s)\n            %s\n            return\n            ;;\n", pattern, reply))
		}
		if len(valueCases) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			b.WriteString(strings.Join(valueCases, ""))
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", flagWords(c.Flags))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("        COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F _%s_completions %s\n", programName, programName)

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text used inside a single-quoted _arguments argument.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`)
	return r.Replace(s)
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ": "
	}

	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n\n", programName)
	fmt.Fprintf(&b, "_%s() {\n", programName)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		var specs []string
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			specs = append(specs, "'1:"+c.Name+":("+strings.Join(c.Args, " ")+")'")
		case c.TakesFiles:
			specs = append(specs, "'*:file:_files -g \""+strings.Join(globs(c.FilePattern), " ")+"\"'")
		}
		if len(specs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n            ")
		b.WriteString(strings.Join(specs, " \\\n            "))
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef _%s %s\n", programName, programName)

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishEscape escapes text used inside a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n\n", programName)
	fmt.Fprintf(&b, "function __fish_%s_needs_command\n", programName)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	fmt.Fprintf(&b, "function __fish_%s_using_command\n", programName)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	fmt.Fprintf(&b, "complete -c %s -f\n", programName)

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c %s -n __fish_%s_needs_command -a %s -d '%s'\n",
			programName, programName, c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_%s_using_command %s'", programName, c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n %s", programName, cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -xa '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -rF"
			case flagDir:
				line += " -xa '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d '" + fishEscape(f.Desc) + "'"
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c %s -n %s -xa '%s'\n", programName, cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c %s -n %s -F\n", programName, cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// psQuote returns s as a single-quoted PowerShell string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psArray(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = psQuote(it)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# powershell completion for %s\n\n", programName)
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", programName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(strings.Fields(flagWords(c.Flags))))
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			fmt.Fprintf(&b, "        %s = %s\n", psQuote("--"+f.Long), psArray(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        %s = %s\n", psQuote("-"+f.Short), psArray(f.Values))
			}
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $arguments = @{\n")
	for _, c := range cmds {
		if len(c.Args) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(c.Args))
	}
	b.WriteString("    }\n\n")

	b.WriteString(`    function Complete($items, $type) {
        $items | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, $type, $_)
        }
    }

    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {
        $commands.GetEnumerator() | Where-Object { $_.Key -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)
        }
        return
    }

    $cmd = $words[1]
    $prev = if ($wordToComplete -eq '') { $words[-1] } else { $words[-2] }

    if ($values.ContainsKey($prev)) {
        Complete $values[$prev] 'ParameterValue'
    } elseif ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {
        Complete $flags[$cmd] 'ParameterName'
    } elseif ($arguments.ContainsKey($cmd)) {
        Complete $arguments[$cmd] 'ParameterValue'
    }
}
`)

	_, err := io.WriteString(w, b.String())
	return err
}
