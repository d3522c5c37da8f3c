package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out. algorithms lists the registered counter names.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := strings.Join(append(append([]string{}, algorithms...), "all"), " ")
	switch shell {
	case "bash":
		_, err := fmt.Fprintf(out, bashCompletion, algos)
		return err
	case "zsh":
		_, err := fmt.Fprintf(out, zshCompletion, algos)
		return err
	case "fish":
		_, err := fmt.Fprintf(out, fishCompletion, algos)
		return err
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

const bashCompletion = `# Bash completion script for ratcount
# Add this to your ~/.bashrc or ~/.bash_completion

_ratcount_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -n -d --details --timeout --algo --json --quiet -q --no-color --server --port --max-n --compare --trials --log-level --completion"
    algorithms="%s"

    case "${prev}" in
        --algo|-algo)
            COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )
            return 0
            ;;
        --log-level|-log-level)
            COMPREPLY=( $(compgen -W "debug info warn error disabled" -- "${cur}") )
            return 0
            ;;
        --completion|-completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
            return 0
            ;;
        --timeout|-timeout)
            COMPREPLY=( $(compgen -W "10s 1m 5m 30m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _ratcount_completions ratcount
`

const zshCompletion = `#compdef ratcount
# Zsh completion script for ratcount

_ratcount() {
    _arguments \
        '-n[Denominator bound N]:bound:' \
        '(-d --details)'{-d,--details}'[Display timing and the asymptotic estimate]' \
        '--timeout[Maximum execution time]:duration:(10s 1m 5m 30m)' \
        '--algo[Counter to use]:algorithm:(%s)' \
        '--json[Output results in JSON format]' \
        '(-q --quiet)'{-q,--quiet}'[Print only the count]' \
        '--no-color[Disable colored output]' \
        '--server[Start in HTTP server mode]' \
        '--port[Port to listen on]:port:' \
        '--max-n[Largest N accepted by the HTTP API]:bound:' \
        '--compare[Time the brute-force counter against the sieve]' \
        '--trials[Timed runs per counter]:trials:' \
        '--log-level[Log level]:level:(debug info warn error disabled)' \
        '--completion[Generate shell completion script]:shell:(bash zsh fish)' \
        '(-V --version)'{-V,--version}'[Print version information]'
}

_ratcount "$@"
`

const fishCompletion = `# Fish completion script for ratcount

complete -c ratcount -s n -d 'Denominator bound N' -r
complete -c ratcount -s d -l details -d 'Display timing and the asymptotic estimate'
complete -c ratcount -l timeout -d 'Maximum execution time' -r
complete -c ratcount -l algo -d 'Counter to use' -xa '%s'
complete -c ratcount -l json -d 'Output results in JSON format'
complete -c ratcount -s q -l quiet -d 'Print only the count'
complete -c ratcount -l no-color -d 'Disable colored output'
complete -c ratcount -l server -d 'Start in HTTP server mode'
complete -c ratcount -l port -d 'Port to listen on' -r
complete -c ratcount -l max-n -d 'Largest N accepted by the HTTP API' -r
complete -c ratcount -l compare -d 'Time the brute-force counter against the sieve'
complete -c ratcount -l trials -d 'Timed runs per counter' -r
complete -c ratcount -l log-level -d 'Log level' -xa 'debug info warn error disabled'
complete -c ratcount -l completion -d 'Generate shell completion script' -xa 'bash zsh fish'
complete -c ratcount -s V -l version -d 'Print version information'
`
