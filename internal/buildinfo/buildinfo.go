package buildinfo

const ProjectName = "trivio"

const Graffiti = `
 _        _       _
| |_ _ __(_)_   _(_) ___
| __| '__| \ \ / / |/ _ \
| |_| |  | |\ V /| | (_) |
 \__|_|  |_| \_/ |_|\___/

`

const GreetingCLI = "%s %s, multiplayer trivia over raw TCP\n"
